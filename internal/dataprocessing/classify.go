package dataprocessing

import (
	"math"

	"glcli/pkg/contracts/domain"
)

// BandClassifier maps a weight deviation to a presentation band. The engine
// exposes the band as metadata; how a band is rendered is the collaborator's
// concern.
type BandClassifier struct {
	OKLimit   float64
	WarnLimit float64
}

// NewBandClassifier returns the default classifier: deviations within ±5 are
// ok, within ±20 warn, everything beyond alert. Both bounds are inclusive.
func NewBandClassifier() BandClassifier {
	return BandClassifier{OKLimit: 5, WarnLimit: 20}
}

// Classify returns the band for a deviation value.
func (c BandClassifier) Classify(diff float64) domain.WeightBand {
	abs := math.Abs(diff)
	switch {
	case abs <= c.OKLimit:
		return domain.BandOK
	case abs <= c.WarnLimit:
		return domain.BandWarn
	default:
		return domain.BandAlert
	}
}

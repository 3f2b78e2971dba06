package domain

import "sort"

// WeightBand classifies a roll-weight deviation for presentation. The engine
// exposes the band as metadata; rendering (colors, styling) is the
// collaborator's concern.
type WeightBand string

const (
	BandOK    WeightBand = "ok"
	BandWarn  WeightBand = "warn"
	BandAlert WeightBand = "alert"
)

// RollWeightRecord represents one normalized roll from a production report.
// Optional per-roll measures that the sheet may or may not carry are kept in
// Extra keyed by their column name.
type RollWeightRecord struct {
	FGDescription     string             `json:"fg_description" validate:"required"`
	RollNo            string             `json:"roll_no"`
	ActualWeight      float64            `json:"actual_weight"`
	TheoreticalWeight float64            `json:"theoretical_weight"`
	Diff              float64            `json:"diff"`
	Extra             map[string]float64 `json:"extra,omitempty"`
	Band              WeightBand         `json:"band"`
}

// RollWeightBatch is the immutable result of normalizing one roll-weight
// report upload.
type RollWeightBatch struct {
	Records     []RollWeightRecord `json:"records"`
	ContentHash uint64             `json:"content_hash"`
	SourceRows  int                `json:"source_rows"`
	DroppedRows int                `json:"dropped_rows"`
}

// FGDescriptions returns the sorted distinct finished-goods descriptions in
// the batch, the selectable filter values for the presentation layer.
func (b *RollWeightBatch) FGDescriptions() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range b.Records {
		d := b.Records[i].FGDescription
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

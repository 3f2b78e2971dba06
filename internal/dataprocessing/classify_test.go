package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glcli/pkg/contracts/domain"
)

func TestBandClassifier_Classify(t *testing.T) {
	classifier := NewBandClassifier()

	testCases := []struct {
		name string
		diff float64
		want domain.WeightBand
	}{
		{name: "zero difference", diff: 0, want: domain.BandOK},
		{name: "within tolerance", diff: 3.2, want: domain.BandOK},
		{name: "negative within tolerance", diff: -4.99, want: domain.BandOK},
		{name: "exactly at ok limit", diff: 5, want: domain.BandOK},
		{name: "negative at ok limit", diff: -5, want: domain.BandOK},
		{name: "just past ok limit", diff: 5.01, want: domain.BandWarn},
		{name: "mid warn range", diff: -12, want: domain.BandWarn},
		{name: "exactly at warn limit", diff: 20, want: domain.BandWarn},
		{name: "negative at warn limit", diff: -20, want: domain.BandWarn},
		{name: "just past warn limit", diff: 20.01, want: domain.BandAlert},
		{name: "large overweight", diff: 87.5, want: domain.BandAlert},
		{name: "large underweight", diff: -150, want: domain.BandAlert},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifier.Classify(tc.diff))
		})
	}
}

func TestBandClassifier_CustomLimits(t *testing.T) {
	classifier := BandClassifier{OKLimit: 1, WarnLimit: 2}

	assert.Equal(t, domain.BandOK, classifier.Classify(-1))
	assert.Equal(t, domain.BandWarn, classifier.Classify(1.5))
	assert.Equal(t, domain.BandAlert, classifier.Classify(2.5))
}

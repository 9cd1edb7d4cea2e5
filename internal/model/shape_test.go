package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeClassification(t *testing.T) {
	artifact := classifierFixture()
	servedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		scores         []float64
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "clear winner",
			scores:         []float64{0.9, 0.1},
			wantLabel:      "CONFIRMED",
			wantConfidence: 0.9,
		},
		{
			name:           "other class wins",
			scores:         []float64{0.25, 0.75},
			wantLabel:      "FALSE_POSITIVE",
			wantConfidence: 0.75,
		},
		{
			name:           "exact tie breaks to alphabetically lowest label",
			scores:         []float64{0.5, 0.5},
			wantLabel:      "CONFIRMED",
			wantConfidence: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ShapeClassification(artifact, RawScores{Probabilities: tt.scores}, servedAt)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, result.Label)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			assert.Equal(t, result.Probabilities[result.Label], result.Confidence)
			assert.Equal(t, "test-classifier:0.1.0", result.Model)
			assert.Equal(t, servedAt, result.ServedAt)

			var sum float64
			for _, p := range result.Probabilities {
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-6)
		})
	}
}

func TestShapeClassification_RenormalizesDriftedScores(t *testing.T) {
	artifact := classifierFixture()
	result, err := ShapeClassification(artifact, RawScores{Probabilities: []float64{0.3, 0.3}}, time.Now())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.Probabilities["CONFIRMED"], 1e-9)
	assert.InDelta(t, 0.5, result.Probabilities["FALSE_POSITIVE"], 1e-9)
	assert.Equal(t, "CONFIRMED", result.Label)
}

func TestShapeClassification_DegenerateScores(t *testing.T) {
	artifact := classifierFixture()
	_, err := ShapeClassification(artifact, RawScores{Probabilities: []float64{0, 0}}, time.Now())
	assert.ErrorIs(t, err, ErrDegenerateScores)
}

func TestShapeClassification_DoesNotMutateRawScores(t *testing.T) {
	artifact := classifierFixture()
	raw := []float64{0.3, 0.3}
	_, err := ShapeClassification(artifact, RawScores{Probabilities: raw}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.3}, raw)
}

func TestShapeRegression(t *testing.T) {
	artifact := regressorFixture() // std_error 0.5
	servedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	result := ShapeRegression(artifact, RawScores{Estimate: 2.5}, servedAt)
	assert.InDelta(t, 2.5, result.Estimate, 1e-12)
	assert.InDelta(t, 2.5-1.96*0.5, result.IntervalLower, 1e-9)
	assert.InDelta(t, 2.5+1.96*0.5, result.IntervalUpper, 1e-9)
	assert.Equal(t, RadiusUnit, result.Unit)
	assert.Equal(t, "test-regressor:0.1.0", result.Model)
	assert.Equal(t, servedAt, result.ServedAt)
}

func TestShapeRegression_ClampsIntervalAtZero(t *testing.T) {
	artifact := regressorFixture()

	result := ShapeRegression(artifact, RawScores{Estimate: 0.3}, time.Now())
	assert.Equal(t, 0.0, result.IntervalLower)
	assert.LessOrEqual(t, result.IntervalLower, result.Estimate)
	assert.GreaterOrEqual(t, result.IntervalUpper, result.Estimate)
}

func TestShapeRegression_NegativeEstimateClampedToZero(t *testing.T) {
	artifact := regressorFixture()

	result := ShapeRegression(artifact, RawScores{Estimate: -1.2}, time.Now())
	assert.Equal(t, 0.0, result.Estimate)
	assert.Equal(t, 0.0, result.IntervalLower)
	assert.GreaterOrEqual(t, result.IntervalUpper, result.Estimate)
}

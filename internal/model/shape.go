package model

import (
	"math"
	"time"
)

const (
	// probabilitySumTolerance bounds the accepted drift of Σ probabilities from 1.
	probabilitySumTolerance = 1e-6
	// zScore95 is the normal z-score for a 95% interval.
	zScore95 = 1.96
	// RadiusUnit is the fixed unit of regression estimates.
	RadiusUnit = "Earth radii"
)

// ClassificationResult is the public shape of a classification prediction.
type ClassificationResult struct {
	Label         string
	Confidence    float64
	Probabilities map[string]float64
	Model         string
	ServedAt      time.Time
}

// RegressionResult is the public shape of a regression prediction.
type RegressionResult struct {
	Estimate      float64
	IntervalLower float64
	IntervalUpper float64
	Unit          string
	Model         string
	ServedAt      time.Time
}

// ShapeClassification turns raw class scores into the public result: argmax
// label, the winning probability as confidence, and the full normalized map.
// Scores whose sum drifts from 1 beyond tolerance are renormalized; a sum
// near zero cannot be renormalized and is reported as degenerate.
func ShapeClassification(artifact *Artifact, scores RawScores, servedAt time.Time) (ClassificationResult, error) {
	probs := make([]float64, len(scores.Probabilities))
	copy(probs, scores.Probabilities)

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > probabilitySumTolerance {
		if sum < probabilitySumTolerance {
			return ClassificationResult{}, ErrDegenerateScores
		}
		for i := range probs {
			probs[i] /= sum
		}
	}

	// argmax with a deterministic tie-break: the alphabetically lowest label wins
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] ||
			(probs[i] == probs[best] && artifact.Classes[i] < artifact.Classes[best]) {
			best = i
		}
	}

	probabilities := make(map[string]float64, len(probs))
	for i, class := range artifact.Classes {
		probabilities[class] = probs[i]
	}

	return ClassificationResult{
		Label:         artifact.Classes[best],
		Confidence:    probs[best],
		Probabilities: probabilities,
		Model:         artifact.Identity(),
		ServedAt:      servedAt,
	}, nil
}

// ShapeRegression builds the 95% interval around the point estimate from the
// residual standard error recorded in the artifact's training metadata. The
// estimate and the lower bound are clamped at zero: a planetary radius
// cannot be negative.
func ShapeRegression(artifact *Artifact, scores RawScores, servedAt time.Time) RegressionResult {
	estimate := scores.Estimate
	if estimate < 0 {
		estimate = 0
	}
	stdError := artifact.StdError()
	lower := estimate - zScore95*stdError
	upper := estimate + zScore95*stdError
	if lower < 0 {
		lower = 0
	}

	return RegressionResult{
		Estimate:      estimate,
		IntervalLower: lower,
		IntervalUpper: upper,
		Unit:          RadiusUnit,
		Model:         artifact.Identity(),
		ServedAt:      servedAt,
	}
}

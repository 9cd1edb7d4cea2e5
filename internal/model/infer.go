package model

import (
	"errors"

	"github.com/exoplanet-intelligence/exoserve/internal/schema"
)

// RawScores is the unshaped output of one inference pass. Probabilities is
// aligned with the artifact's class order for classification; Estimate is the
// point estimate for regression.
type RawScores struct {
	Probabilities []float64
	Estimate      float64
}

// Infer runs one forward pass of the ensemble over an already-validated
// vector. The vector is reordered into the artifact's declared feature
// layout; a disagreement between the two feature sets is a server-side
// misconfiguration, not a client error. Inference is deterministic and
// side-effect free, so there is nothing to retry.
func Infer(artifact *Artifact, vector schema.FeatureVector) (RawScores, error) {
	ordered, err := orderFeatures(artifact, vector)
	if err != nil {
		return RawScores{}, err
	}

	switch artifact.Task {
	case TaskClassification:
		return inferClassification(artifact, ordered)
	case TaskRegression:
		return inferRegression(artifact, ordered)
	default:
		return RawScores{}, ErrUnknownTaskType
	}
}

func orderFeatures(artifact *Artifact, vector schema.FeatureVector) ([]float64, error) {
	if len(vector) != len(artifact.Features) {
		return nil, ErrFeatureMismatch
	}
	ordered := make([]float64, len(artifact.Features))
	for i, key := range artifact.Features {
		value, ok := vector[key]
		if !ok {
			return nil, ErrFeatureMismatch
		}
		ordered[i] = value
	}
	return ordered, nil
}

func inferClassification(artifact *Artifact, features []float64) (RawScores, error) {
	sums := make([]float64, len(artifact.Classes))
	for _, tree := range artifact.Trees {
		leaf, err := walk(tree, features)
		if err != nil {
			return RawScores{}, err
		}
		for i, p := range leaf.Distribution {
			sums[i] += p
		}
	}
	for i := range sums {
		sums[i] /= float64(len(artifact.Trees))
	}
	return RawScores{Probabilities: sums}, nil
}

func inferRegression(artifact *Artifact, features []float64) (RawScores, error) {
	var sum float64
	for _, tree := range artifact.Trees {
		leaf, err := walk(tree, features)
		if err != nil {
			return RawScores{}, err
		}
		sum += leaf.Value
	}
	return RawScores{Estimate: sum / float64(len(artifact.Trees))}, nil
}

func walk(tree Tree, features []float64) (TreeNode, error) {
	idx := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes;
	// exceeding that means a cycle slipped past validation.
	for steps := 0; steps < len(tree.Nodes); steps++ {
		node := tree.Nodes[idx]
		if node.Leaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(tree.Nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
	return TreeNode{}, errors.New("tree traversal did not reach a leaf")
}

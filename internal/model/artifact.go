package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type TaskType string

const (
	TaskClassification TaskType = "classification"
	TaskRegression     TaskType = "regression"
)

var (
	ErrUnknownTaskType  = errors.New("unknown task type")
	ErrFeatureMismatch  = errors.New("feature set does not match artifact")
	ErrDegenerateScores = errors.New("degenerate class scores")
)

// Artifact is a trained tree ensemble serialized as JSON, loaded once at
// startup and shared read-only across requests. Classification leaves carry a
// class distribution aligned with Classes; regression leaves carry a value.
type Artifact struct {
	Name     string             `json:"name"`
	Version  string             `json:"version"`
	Task     TaskType           `json:"task"`
	Features []string           `json:"features"`
	Classes  []string           `json:"classes,omitempty"`
	Trees    []Tree             `json:"trees"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

type TreeNode struct {
	FeatureIdx   int       `json:"feature_idx"`
	Threshold    float64   `json:"threshold"`
	Left         int       `json:"left"`
	Right        int       `json:"right"`
	Leaf         bool      `json:"leaf"`
	Value        float64   `json:"value,omitempty"`
	Distribution []float64 `json:"distribution,omitempty"`
}

// Identity returns the artifact's model identity string.
func (a *Artifact) Identity() string {
	return a.Name + ":" + a.Version
}

// StdError returns the residual standard error recorded at training time.
// Only meaningful for regression artifacts.
func (a *Artifact) StdError() float64 {
	return a.Metrics["std_error"]
}

// LoadArtifact reads and validates a JSON artifact file. A failure here is
// fatal to the caller at startup; the process must not serve with a missing
// or corrupt artifact.
func LoadArtifact(path string, task TaskType) (*Artifact, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	if err := artifact.validate(task); err != nil {
		return nil, fmt.Errorf("invalid artifact %s: %w", path, err)
	}
	return &artifact, nil
}

func (a *Artifact) validate(task TaskType) error {
	if a.Task != task {
		return fmt.Errorf("artifact task %q, expected %q", a.Task, task)
	}
	if a.Name == "" || a.Version == "" {
		return errors.New("artifact name and version must be set")
	}
	if len(a.Features) == 0 {
		return errors.New("artifact declares no features")
	}
	seen := make(map[string]struct{}, len(a.Features))
	for _, key := range a.Features {
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate feature %s", key)
		}
		seen[key] = struct{}{}
	}
	if len(a.Trees) == 0 {
		return errors.New("artifact contains no trees")
	}
	switch task {
	case TaskClassification:
		if len(a.Classes) < 2 {
			return errors.New("classification artifact needs at least two classes")
		}
		for ti, tree := range a.Trees {
			for ni, node := range tree.Nodes {
				if node.Leaf && len(node.Distribution) != len(a.Classes) {
					return fmt.Errorf("tree %d node %d distribution size %d, want %d",
						ti, ni, len(node.Distribution), len(a.Classes))
				}
			}
		}
	case TaskRegression:
		if _, ok := a.Metrics["std_error"]; !ok {
			return errors.New("regression artifact missing std_error metric")
		}
		if a.Metrics["std_error"] < 0 {
			return errors.New("std_error must be non-negative")
		}
	default:
		return ErrUnknownTaskType
	}
	for ti, tree := range a.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf {
				continue
			}
			if node.FeatureIdx < 0 || node.FeatureIdx >= len(a.Features) {
				return fmt.Errorf("tree %d node %d feature index out of range", ti, ni)
			}
			// Children must point strictly forward in the node array, so
			// every traversal terminates at a leaf in at most len(Nodes)
			// steps. A back edge would send serving into an endless walk.
			if node.Left <= ni || node.Left >= len(tree.Nodes) ||
				node.Right <= ni || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d child index out of range", ti, ni)
			}
		}
	}
	return nil
}

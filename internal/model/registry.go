package model

import (
	"path/filepath"
	"sync"

	"github.com/exoplanet-intelligence/exoserve/internal/configs"
	"github.com/rs/zerolog/log"
)

// Metadata describes a loaded artifact for introspection.
type Metadata struct {
	Name     string             `json:"name"`
	Version  string             `json:"version"`
	Task     TaskType           `json:"task"`
	Features []string           `json:"features"`
	Classes  []string           `json:"classes,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// Registry holds exactly one immutable artifact per task type. Artifacts are
// loaded once at startup; any number of concurrent inference calls may read
// them with no coordination.
type Registry struct {
	artifacts map[TaskType]*Artifact
}

var (
	registry *Registry
	once     sync.Once
)

// Init loads both artifacts from the configured model directory. A load
// failure is fatal; the process must not start serving without its models.
func Init(config configs.Configs) {
	once.Do(func() {
		modelDir := config.ModelDir
		if modelDir == "" {
			modelDir = "artifacts"
			log.Warn().Str("modelDir", modelDir).Msg("Model dir not set, using default")
		}
		classificationFile := config.ClassificationArtifactFile
		if classificationFile == "" {
			classificationFile = "classification_model.json"
		}
		regressionFile := config.RegressionArtifactFile
		if regressionFile == "" {
			regressionFile = "regression_model.json"
		}

		reg, err := NewRegistry(map[TaskType]string{
			TaskClassification: filepath.Join(modelDir, classificationFile),
			TaskRegression:     filepath.Join(modelDir, regressionFile),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load model artifacts")
		}
		registry = reg
	})
}

// Instance returns the registry singleton.
func Instance() *Registry {
	if registry == nil {
		log.Fatal().Msg("Model registry not initialized")
	}
	return registry
}

// NewRegistry loads one artifact per task from the given paths.
func NewRegistry(paths map[TaskType]string) (*Registry, error) {
	artifacts := make(map[TaskType]*Artifact, len(paths))
	for task, path := range paths {
		artifact, err := LoadArtifact(path, task)
		if err != nil {
			return nil, err
		}
		artifacts[task] = artifact
		log.Info().Str("task", string(task)).Str("model", artifact.Identity()).
			Int("trees", len(artifact.Trees)).Msg("Loaded model artifact")
	}
	return &Registry{artifacts: artifacts}, nil
}

// Resolve returns the artifact serving the given task type.
func (r *Registry) Resolve(task TaskType) (*Artifact, error) {
	artifact, ok := r.artifacts[task]
	if !ok {
		return nil, ErrUnknownTaskType
	}
	return artifact, nil
}

// Describe returns introspection metadata for one task.
func (r *Registry) Describe(task TaskType) (Metadata, error) {
	artifact, err := r.Resolve(task)
	if err != nil {
		return Metadata{}, err
	}
	return metadataOf(artifact), nil
}

// DescribeAll returns metadata for every loaded artifact keyed by task type.
func (r *Registry) DescribeAll() map[TaskType]Metadata {
	all := make(map[TaskType]Metadata, len(r.artifacts))
	for task, artifact := range r.artifacts {
		all[task] = metadataOf(artifact)
	}
	return all
}

func metadataOf(a *Artifact) Metadata {
	return Metadata{
		Name:     a.Name,
		Version:  a.Version,
		Task:     a.Task,
		Features: a.Features,
		Classes:  a.Classes,
		Metrics:  a.Metrics,
	}
}

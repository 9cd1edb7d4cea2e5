package handler

import (
	"time"
)

// PredictRequest is the inbound body of both prediction endpoints. Values
// arrive untyped so the validator can report non-numeric fields per key
// instead of failing the whole bind. An absent features object is validated
// like an empty one: every required field is reported missing.
type PredictRequest struct {
	Features map[string]interface{} `json:"features"`
}

type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

type ClassificationResponse struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	ModelName     string             `json:"model_name"`
	Timestamp     time.Time          `json:"timestamp"`
}

type RegressionResponse struct {
	Prediction         float64            `json:"prediction"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	Unit               string             `json:"unit"`
	ModelName          string             `json:"model_name"`
	Timestamp          time.Time          `json:"timestamp"`
}

type HistoryEntry struct {
	ID            uint64                 `json:"id"`
	TaskType      string                 `json:"task_type"`
	InputFeatures map[string]float64     `json:"input_features"`
	OutputResult  map[string]interface{} `json:"output_result"`
	ModelName     string                 `json:"model_name"`
	CreatedAt     time.Time              `json:"created_at"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

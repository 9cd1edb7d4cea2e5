package handler

import (
	"encoding/json"
	"time"

	"github.com/exoplanet-intelligence/exoserve/internal/configs"
	"github.com/exoplanet-intelligence/exoserve/internal/model"
	"github.com/exoplanet-intelligence/exoserve/internal/repositories/sql/prediction"
	"github.com/exoplanet-intelligence/exoserve/internal/schema"
	"github.com/exoplanet-intelligence/exoserve/pkg/api"
	"github.com/exoplanet-intelligence/exoserve/pkg/infra"
	"github.com/exoplanet-intelligence/exoserve/pkg/metric"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxPageSize     = 200
	defaultHistoryPageSize = 50

	outcomeServed   = "served"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

var predictor Predictor

// Predictor is the prediction-serving pipeline: validate, infer, shape,
// persist, respond. One linear pass per request, no retries.
type Predictor interface {
	PredictClassification(features map[string]interface{}) (ClassificationResponse, error)
	PredictRegression(features map[string]interface{}) (RegressionResponse, error)
	History(taskType string, limit, offset int) ([]HistoryEntry, error)
	ModelInfo() map[string]model.Metadata
	Features() []schema.FeatureSpec
}

type predictionPipeline struct {
	registry        *model.Registry
	history         prediction.PredictionRepository
	maxPageSize     int
	defaultPageSize int
}

func InitV1PredictionHandler(config configs.Configs) Predictor {
	if predictor == nil {
		conn, err := infra.SQL.GetConnection()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get SQL connection")
		}
		sqlConn := conn.(*infra.SQLConnection)

		historyRepo, err := prediction.Repository(sqlConn)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create prediction repository")
		}

		predictor = NewPredictionHandler(model.Instance(), historyRepo, config)
	}
	return predictor
}

func NewPredictionHandler(registry *model.Registry, history prediction.PredictionRepository, config configs.Configs) Predictor {
	maxPageSize := config.HistoryMaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	defaultPageSize := config.HistoryDefaultPageSize
	if defaultPageSize <= 0 {
		defaultPageSize = defaultHistoryPageSize
	}
	return &predictionPipeline{
		registry:        registry,
		history:         history,
		maxPageSize:     maxPageSize,
		defaultPageSize: defaultPageSize,
	}
}

func (p *predictionPipeline) PredictClassification(features map[string]interface{}) (ClassificationResponse, error) {
	start := time.Now()
	vector, fieldErrors := schema.Validate(features)
	if fieldErrors != nil {
		p.observe(model.TaskClassification, outcomeRejected, start)
		return ClassificationResponse{}, api.NewUnprocessableEntityError("validation failed", fieldErrors)
	}

	artifact, err := p.registry.Resolve(model.TaskClassification)
	if err != nil {
		return ClassificationResponse{}, p.inferenceFailure(model.TaskClassification, start, err)
	}
	scores, err := model.Infer(artifact, vector)
	if err != nil {
		return ClassificationResponse{}, p.inferenceFailure(model.TaskClassification, start, err)
	}
	result, err := model.ShapeClassification(artifact, scores, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Floats64("rawScores", scores.Probabilities).
			Msg("Classification scores could not be shaped")
		p.observe(model.TaskClassification, outcomeFailed, start)
		return ClassificationResponse{}, api.NewInternalServerError("prediction failed")
	}

	response := ClassificationResponse{
		Prediction:    result.Label,
		Confidence:    result.Confidence,
		Probabilities: result.Probabilities,
		ModelName:     result.Model,
		Timestamp:     result.ServedAt,
	}
	p.record(model.TaskClassification, vector, response, result.Model, result.ServedAt)
	p.observe(model.TaskClassification, outcomeServed, start)
	return response, nil
}

func (p *predictionPipeline) PredictRegression(features map[string]interface{}) (RegressionResponse, error) {
	start := time.Now()
	vector, fieldErrors := schema.Validate(features)
	if fieldErrors != nil {
		p.observe(model.TaskRegression, outcomeRejected, start)
		return RegressionResponse{}, api.NewUnprocessableEntityError("validation failed", fieldErrors)
	}

	artifact, err := p.registry.Resolve(model.TaskRegression)
	if err != nil {
		return RegressionResponse{}, p.inferenceFailure(model.TaskRegression, start, err)
	}

	// The radius is the regression target; it must not leak into the model
	// input. The training pipeline zeroes it, so serving does the same.
	inputs := make(schema.FeatureVector, len(vector))
	for key, value := range vector {
		inputs[key] = value
	}
	inputs["koi_prad"] = 0

	scores, err := model.Infer(artifact, inputs)
	if err != nil {
		return RegressionResponse{}, p.inferenceFailure(model.TaskRegression, start, err)
	}
	result := model.ShapeRegression(artifact, scores, time.Now().UTC())

	response := RegressionResponse{
		Prediction: result.Estimate,
		ConfidenceInterval: ConfidenceInterval{
			Lower: result.IntervalLower,
			Upper: result.IntervalUpper,
		},
		Unit:      result.Unit,
		ModelName: result.Model,
		Timestamp: result.ServedAt,
	}
	p.record(model.TaskRegression, vector, response, result.Model, result.ServedAt)
	p.observe(model.TaskRegression, outcomeServed, start)
	return response, nil
}

func (p *predictionPipeline) History(taskType string, limit, offset int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = p.defaultPageSize
	}
	if limit > p.maxPageSize {
		limit = p.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	records, err := p.history.List(taskType, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read prediction history")
		return nil, api.NewInternalServerError("failed to retrieve history")
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		entry := HistoryEntry{
			ID:        record.ID,
			TaskType:  record.TaskType,
			ModelName: record.ModelName,
			CreatedAt: record.CreatedAt,
		}
		if err := json.Unmarshal([]byte(record.InputFeatures), &entry.InputFeatures); err != nil {
			log.Warn().Err(err).Uint64("id", record.ID).Msg("Unreadable input features in history row")
		}
		if err := json.Unmarshal([]byte(record.OutputResult), &entry.OutputResult); err != nil {
			log.Warn().Err(err).Uint64("id", record.ID).Msg("Unreadable output result in history row")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (p *predictionPipeline) ModelInfo() map[string]model.Metadata {
	info := make(map[string]model.Metadata)
	for task, metadata := range p.registry.DescribeAll() {
		info[string(task)] = metadata
	}
	return info
}

func (p *predictionPipeline) Features() []schema.FeatureSpec {
	return schema.Specs()
}

// inferenceFailure logs the internal cause and returns the generic message
// the client is allowed to see.
func (p *predictionPipeline) inferenceFailure(task model.TaskType, start time.Time, err error) *api.Error {
	log.Error().Err(err).Str("task", string(task)).Msg("Inference failed")
	p.observe(task, outcomeFailed, start)
	return api.NewInternalServerError("prediction failed")
}

// record appends the served prediction to the history ledger. Persistence is
// best-effort: a failed append is logged and counted but never fails the
// response already produced for the caller.
func (p *predictionPipeline) record(task model.TaskType, vector schema.FeatureVector, output interface{}, modelName string, servedAt time.Time) {
	inputPayload, err := json.Marshal(vector)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode input features for history")
		metric.Incr(metric.HistoryAppendFailure, metric.BuildTag(metric.NewTag(metric.TagTaskType, string(task))))
		return
	}
	outputPayload, err := json.Marshal(output)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode prediction result for history")
		metric.Incr(metric.HistoryAppendFailure, metric.BuildTag(metric.NewTag(metric.TagTaskType, string(task))))
		return
	}

	record := prediction.PredictionRecord{
		TaskType:      string(task),
		InputFeatures: string(inputPayload),
		OutputResult:  string(outputPayload),
		ModelName:     modelName,
		CreatedAt:     servedAt,
	}
	if err := p.history.Create(&record); err != nil {
		log.Error().Err(err).Str("task", string(task)).Msg("Failed to append prediction history")
		metric.Incr(metric.HistoryAppendFailure, metric.BuildTag(metric.NewTag(metric.TagTaskType, string(task))))
	}
}

func (p *predictionPipeline) observe(task model.TaskType, outcome string, start time.Time) {
	tags := metric.BuildTag(
		metric.NewTag(metric.TagTaskType, string(task)),
		metric.NewTag(metric.TagOutcome, outcome),
	)
	metric.Incr(metric.PredictionCount, tags)
	metric.Timing(metric.PredictionLatency, time.Since(start), tags)
}

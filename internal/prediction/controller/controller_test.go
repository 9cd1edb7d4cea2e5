package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/exoplanet-intelligence/exoserve/internal/model"
	"github.com/exoplanet-intelligence/exoserve/internal/prediction/handler"
	"github.com/exoplanet-intelligence/exoserve/internal/schema"
	"github.com/exoplanet-intelligence/exoserve/pkg/api"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct {
	classificationErr error
	regressionErr     error
	historyErr        error
	historyTaskType   string
	historyLimit      int
	historyOffset     int
}

func (s *stubPredictor) PredictClassification(map[string]interface{}) (handler.ClassificationResponse, error) {
	if s.classificationErr != nil {
		return handler.ClassificationResponse{}, s.classificationErr
	}
	return handler.ClassificationResponse{
		Prediction:    "CONFIRMED",
		Confidence:    0.85,
		Probabilities: map[string]float64{"CONFIRMED": 0.85, "FALSE_POSITIVE": 0.15},
		ModelName:     "stub:1.0.0",
		Timestamp:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubPredictor) PredictRegression(map[string]interface{}) (handler.RegressionResponse, error) {
	if s.regressionErr != nil {
		return handler.RegressionResponse{}, s.regressionErr
	}
	return handler.RegressionResponse{
		Prediction:         2.5,
		ConfidenceInterval: handler.ConfidenceInterval{Lower: 1.7, Upper: 3.3},
		Unit:               "Earth radii",
		ModelName:          "stub:1.0.0",
		Timestamp:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubPredictor) History(taskType string, limit, offset int) ([]handler.HistoryEntry, error) {
	s.historyTaskType = taskType
	s.historyLimit = limit
	s.historyOffset = offset
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return []handler.HistoryEntry{}, nil
}

func (s *stubPredictor) ModelInfo() map[string]model.Metadata {
	return map[string]model.Metadata{
		"classification": {Name: "stub", Version: "1.0.0", Task: model.TaskClassification},
	}
}

func (s *stubPredictor) Features() []schema.FeatureSpec {
	return schema.Specs()
}

func newTestRouter(stub *stubPredictor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := &V1{Predictor: stub, Version: "1.0.0"}
	router := gin.New()
	apiGroup := router.Group("/api")
	apiGroup.GET("/health", c.Health)
	apiGroup.POST("/predict/classification", c.PredictClassification)
	apiGroup.POST("/predict/regression", c.PredictRegression)
	apiGroup.GET("/predictions/history", c.History)
	apiGroup.GET("/models/info", c.ModelInfo)
	apiGroup.GET("/features", c.Features)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestPredictClassification_OK(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodPost,
		"/api/predict/classification", `{"features": {"koi_prad": 2.5}}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "CONFIRMED", body["prediction"])
	assert.Equal(t, 0.85, body["confidence"])
	assert.Equal(t, "stub:1.0.0", body["model_name"])
	probs, ok := body["probabilities"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, probs, 2)
}

func TestPredictRegression_OK(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodPost,
		"/api/predict/regression", `{"features": {"koi_prad": 2.5}}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 2.5, body["prediction"])
	assert.Equal(t, "Earth radii", body["unit"])
	interval, ok := body["confidence_interval"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1.7, interval["lower"])
	assert.Equal(t, 3.3, interval["upper"])
}

func TestPredict_MalformedBody(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodPost,
		"/api/predict/classification", `{"features": `)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body["detail"])
}

func TestPredict_ValidationErrorCarriesFieldMap(t *testing.T) {
	stub := &stubPredictor{
		classificationErr: api.NewUnprocessableEntityError("validation failed",
			map[string]string{"koi_prad": "koi_prad out of range [0.1, 30]"}),
	}
	recorder := doRequest(newTestRouter(stub), http.MethodPost,
		"/api/predict/classification", `{"features": {"koi_prad": 999999}}`)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Detail)
	assert.Contains(t, body.Fields, "koi_prad")
}

func TestPredict_InternalErrorStaysGeneric(t *testing.T) {
	stub := &stubPredictor{regressionErr: api.NewInternalServerError("prediction failed")}
	recorder := doRequest(newTestRouter(stub), http.MethodPost,
		"/api/predict/regression", `{"features": {"koi_prad": 2.5}}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "prediction failed", body["detail"])
}

func TestHistory_QueryParams(t *testing.T) {
	stub := &stubPredictor{}
	recorder := doRequest(newTestRouter(stub), http.MethodGet,
		"/api/predictions/history?task_type=classification&limit=25&offset=5", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "classification", stub.historyTaskType)
	assert.Equal(t, 25, stub.historyLimit)
	assert.Equal(t, 5, stub.historyOffset)
}

func TestHistory_EmptyIsOKNotError(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodGet,
		"/api/predictions/history?offset=100000", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestHistory_NonIntegerPagingParams(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "limit not an integer", path: "/api/predictions/history?limit=abc"},
		{name: "offset not an integer", path: "/api/predictions/history?offset=2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.NotEmpty(t, body["detail"])
		})
	}
}

func TestHistory_InvalidTaskType(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodGet,
		"/api/predictions/history?task_type=clustering", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestModelInfoEndpoint(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodGet, "/api/models/info", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]model.Metadata
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body, "classification")
	assert.Equal(t, "stub", body["classification"].Name)
}

func TestFeaturesEndpoint(t *testing.T) {
	recorder := doRequest(newTestRouter(&stubPredictor{}), http.MethodGet, "/api/features", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body []schema.FeatureSpec
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body, len(schema.Keys()))
	assert.Equal(t, "koi_prad", body[0].Key)
}

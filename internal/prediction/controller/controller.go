package controller

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/exoplanet-intelligence/exoserve/internal/configs"
	"github.com/exoplanet-intelligence/exoserve/internal/model"
	"github.com/exoplanet-intelligence/exoserve/internal/prediction/handler"
	"github.com/exoplanet-intelligence/exoserve/pkg/api"
	"github.com/gin-gonic/gin"
)

type Prediction interface {
	Health(ctx *gin.Context)
	PredictClassification(ctx *gin.Context)
	PredictRegression(ctx *gin.Context)
	History(ctx *gin.Context)
	ModelInfo(ctx *gin.Context)
	Features(ctx *gin.Context)
}

var (
	predictionController Prediction
	once                 sync.Once
)

type V1 struct {
	Predictor handler.Predictor
	Version   string
}

func NewPredictionController(config configs.Configs) Prediction {
	if predictionController == nil {
		once.Do(func() {
			version := config.AppVersion
			if version == "" {
				version = "1.0.0"
			}
			predictionController = &V1{
				Predictor: handler.InitV1PredictionHandler(config),
				Version:   version,
			}
		})
	}
	return predictionController
}

func (c *V1) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.HealthResponse{
		Status:    "ok",
		Version:   c.Version,
		Timestamp: time.Now().UTC(),
	})
}

func (c *V1) PredictClassification(ctx *gin.Context) {
	var request handler.PredictRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	response, err := c.Predictor.PredictClassification(request.Features)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *V1) PredictRegression(ctx *gin.Context) {
	var request handler.PredictRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	response, err := c.Predictor.PredictRegression(request.Features)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *V1) History(ctx *gin.Context) {
	taskType := ctx.Query("task_type")
	if taskType != "" &&
		taskType != string(model.TaskClassification) &&
		taskType != string(model.TaskRegression) {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "task_type must be classification or regression"})
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer"})
		return
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "offset must be an integer"})
		return
	}

	entries, err := c.Predictor.History(taskType, limit, offset)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

func (c *V1) ModelInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.Predictor.ModelInfo())
}

func (c *V1) Features(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.Predictor.Features())
}

// writeError maps pipeline errors onto the error body shape. Validation
// failures carry the per-field map; everything else stays generic.
func writeError(ctx *gin.Context, err error) {
	var fieldErr *api.FieldError
	if errors.As(err, &fieldErr) {
		ctx.JSON(fieldErr.StatusCode, gin.H{"detail": fieldErr.Message, "fields": fieldErr.Fields})
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		ctx.JSON(apiErr.StatusCode, gin.H{"detail": apiErr.Message})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

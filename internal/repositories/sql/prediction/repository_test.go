package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepository_NilConnection(t *testing.T) {
	repo, err := Repository(nil)
	assert.Nil(t, repo)
	assert.EqualError(t, err, "connection cannot be nil")
}

func TestPredictionRecord_TableName(t *testing.T) {
	assert.Equal(t, "prediction_history", PredictionRecord{}.TableName())
}

package prediction

import (
	"errors"

	"github.com/exoplanet-intelligence/exoserve/pkg/infra"
	"gorm.io/gorm"
)

type PredictionRepository interface {
	Create(record *PredictionRecord) error
	List(taskType string, limit, offset int) ([]PredictionRecord, error)
}

type predictionRepo struct {
	db     *gorm.DB
	dbName string
}

func Repository(connection *infra.SQLConnection) (PredictionRepository, error) {
	if connection == nil {
		return nil, errors.New("connection cannot be nil")
	}

	session, err := connection.GetConn()
	if err != nil {
		return nil, err
	}
	meta, err := connection.GetMeta()
	if err != nil {
		return nil, err
	}
	dbName := meta["db_name"].(string)

	return &predictionRepo{
		db:     session.(*gorm.DB),
		dbName: dbName,
	}, nil
}

func (r *predictionRepo) Create(record *PredictionRecord) error {
	return r.db.Create(record).Error
}

// List returns records newest first, ties broken by id descending. An offset
// past the end of the ledger yields an empty slice, not an error. An empty
// taskType applies no filter.
func (r *predictionRepo) List(taskType string, limit, offset int) ([]PredictionRecord, error) {
	var records []PredictionRecord
	query := r.db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset)
	if taskType != "" {
		query = query.Where("task_type = ?", taskType)
	}
	err := query.Find(&records).Error
	return records, err
}

package prediction

import (
	"time"

	"gorm.io/gorm"
)

const PredictionHistoryTableName = "prediction_history"

// PredictionRecord is one row of the append-only prediction ledger. Rows are
// never updated or deleted by the serving path; the auto-increment id keeps
// insertion order strictly increasing.
type PredictionRecord struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	TaskType      string `gorm:"not null;index"`
	InputFeatures string `gorm:"type:json;not null"`
	OutputResult  string `gorm:"type:json;not null"`
	ModelName     string `gorm:"not null"`
	CreatedAt     time.Time
}

func (PredictionRecord) TableName() string {
	return PredictionHistoryTableName
}

func (r *PredictionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.CreatedAt.IsZero() {
		tx.Statement.SetColumn("CreatedAt", time.Now().UTC())
	}
	return
}

package postgres

import (
	"context"
	"fmt"

	"fourthandshort/business/training"
	"fourthandshort/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModelLedgerRepository persists validation metrics for trained artifacts,
// keyed by (name, version).
type ModelLedgerRepository struct {
	DB *gorm.DB
}

var _ training.LedgerRepository = (*ModelLedgerRepository)(nil)

func NewModelLedgerRepository(db *gorm.DB) *ModelLedgerRepository {
	return &ModelLedgerRepository{DB: db}
}

// Upsert inserts the metrics row, replacing an existing row at the same
// (name, version) so re-training a version never duplicates it.
func (r *ModelLedgerRepository) Upsert(ctx context.Context, record domain.ModelRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "version"}},
			DoUpdates: clause.AssignmentColumns([]string{"metrics_json"}),
		},
	).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to upsert model record: %w", err)
	}

	return nil
}

// List returns the ledger, newest first.
func (r *ModelLedgerRepository) List(ctx context.Context) ([]domain.ModelRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.ModelRecord
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query models ledger: %w", err)
	}

	return records, nil
}

package postgres

import (
	"context"
	"fmt"

	"fourthandshort/business/decision"
	"fourthandshort/domain"

	"gorm.io/gorm"
)

// RequestLogRepository appends telemetry rows. Entries are never updated
// or read back by the decision path.
type RequestLogRepository struct {
	DB *gorm.DB
}

var _ decision.RequestLogRepository = (*RequestLogRepository)(nil)

func NewRequestLogRepository(db *gorm.DB) *RequestLogRepository {
	return &RequestLogRepository{DB: db}
}

func (r *RequestLogRepository) Save(ctx context.Context, entry domain.RequestLog) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to save request log: %w", err)
	}

	return nil
}

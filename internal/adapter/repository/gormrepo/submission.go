package gormrepo

import (
	"context"

	"onboarding-service/internal/domain/submission"

	"gorm.io/gorm"
)

type SubmissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, rec *submission.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *SubmissionRepository) ListByPlace(ctx context.Context, placeID string) ([]submission.Record, error) {
	out := make([]submission.Record, 0)
	res := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

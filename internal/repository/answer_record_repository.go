package repository

import (
	"context"

	"practice_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRecordRepository struct {
	DB *gorm.DB
}

func NewAnswerRecordRepository(db *gorm.DB) *AnswerRecordRepository {
	return &AnswerRecordRepository{DB: db}
}

func (r *AnswerRecordRepository) Create(ctx context.Context, rec *model.AnswerRecord) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

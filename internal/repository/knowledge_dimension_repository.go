package repository

import (
	"context"

	"practice_backend/internal/model"

	"gorm.io/gorm"
)

type KnowledgeDimensionRepository struct {
	DB *gorm.DB
}

func NewKnowledgeDimensionRepository(db *gorm.DB) *KnowledgeDimensionRepository {
	return &KnowledgeDimensionRepository{DB: db}
}

func (r *KnowledgeDimensionRepository) FindAll(ctx context.Context) ([]model.KnowledgeDimension, error) {
	var dims []model.KnowledgeDimension
	err := r.DB.WithContext(ctx).Order("id asc").Find(&dims).Error
	return dims, err
}

// ListIDs 返回目录快照（按 id 升序）
func (r *KnowledgeDimensionRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.KnowledgeDimension{}).Order("id asc").Pluck("id", &ids).Error
	return ids, err
}

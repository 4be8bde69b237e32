package repository

import (
	"context"
	"errors"

	"practice_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// CreateWithDimensions 在同一事务内写入题目及其维度关联。
// 只关联目录中存在的维度 id，不存在的 id 被忽略。
func (r *QuestionRepository) CreateWithDimensions(ctx context.Context, q *model.Question, dimIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []uint
		if len(dimIDs) > 0 {
			if err := tx.Model(&model.KnowledgeDimension{}).
				Where("id IN ?", dimIDs).
				Order("id asc").
				Pluck("id", &existing).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(q).Error; err != nil {
			return err
		}

		if len(existing) == 0 {
			return nil
		}
		relations := make([]model.QuestionKdRelation, 0, len(existing))
		for _, kd := range existing {
			relations = append(relations, model.QuestionKdRelation{QID: q.ID, KDID: kd})
		}
		return tx.Create(&relations).Error
	})
}

// FindByID 不存在时返回 (nil, nil)
func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

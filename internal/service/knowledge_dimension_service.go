package service

import (
	"context"

	"practice_backend/internal/model"
	"practice_backend/internal/repository"
)

type KnowledgeDimensionService struct {
	Repo *repository.KnowledgeDimensionRepository
}

func NewKnowledgeDimensionService(repo *repository.KnowledgeDimensionRepository) *KnowledgeDimensionService {
	return &KnowledgeDimensionService{Repo: repo}
}

func (s *KnowledgeDimensionService) ListDimensions(ctx context.Context) ([]model.KnowledgeDimension, error) {
	return s.Repo.FindAll(ctx)
}

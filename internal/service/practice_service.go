package service

import (
	"context"

	"practice_backend/internal/model"
)

// PracticeService 练习出题与评分的入口
type PracticeService struct {
	selector  *DimensionSelector
	generator *QuestionGenerator
	grader    *AnswerGrader
}

func NewPracticeService(selector *DimensionSelector, generator *QuestionGenerator, grader *AnswerGrader) *PracticeService {
	return &PracticeService{selector: selector, generator: generator, grader: grader}
}

// Generate 先选维度再出题
func (s *PracticeService) Generate(ctx context.Context, req model.PracticeRequest) (*GeneratedQuestion, error) {
	dims := s.selector.Select(ctx, req.PriorScore, req.Dimensions)
	return s.generator.Generate(ctx, req, dims)
}

func (s *PracticeService) SubmitAnswer(ctx context.Context, req model.AnswerRequest) (*AnswerResult, error) {
	return s.grader.Submit(ctx, req)
}

package service

import (
	"context"
	"fmt"
	"time"

	"practice_backend/internal/llm"
	"practice_backend/internal/model"
	"practice_backend/internal/util"
	"practice_backend/pkg/logger"
	"practice_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// QuestionStore 题目写入
type QuestionStore interface {
	CreateWithDimensions(ctx context.Context, q *model.Question, dimIDs []uint) error
}

// GeneratedQuestion 已落库的题目
type GeneratedQuestion struct {
	ID       uint
	Item     model.PracticeItem
	Fallback bool
}

type QuestionGenerator struct {
	llm   llm.Completer
	store QuestionStore
	rng   RandSource
}

func NewQuestionGenerator(completer llm.Completer, store QuestionStore, rng RandSource) *QuestionGenerator {
	return &QuestionGenerator{llm: completer, store: store, rng: rng}
}

// Generate 调用模型出题，失败或不合格时使用兜底模板，最后落库。
// 只有写库失败会返回错误。
func (g *QuestionGenerator) Generate(ctx context.Context, req model.PracticeRequest, dims []uint) (*GeneratedQuestion, error) {
	log := logger.WithContext(ctx)

	verdict := g.attempt(ctx, req, dims)
	item := verdict.Item
	if verdict.NeedsFallback() {
		log.Warn("LLM输出异常，启用兜底模板",
			zap.String("reason", verdict.Reason),
			zap.Uints("dims", dims),
		)
		monitoring.Fallbacks.WithLabelValues("generate", verdict.Cause).Inc()
		item = fallbackItem(req, dims, g.rng)
	}

	q := item.ToQuestion()
	if err := g.store.CreateWithDimensions(ctx, q, item.Dimensions); err != nil {
		log.Error("题目入库失败", zap.Error(err))
		return nil, fmt.Errorf("%w: insert question: %v", util.ErrPersistence, err)
	}

	log.Info("题目入库",
		zap.Uint("question_id", q.ID),
		zap.Strings("points", item.CorePoints),
		zap.Bool("fallback", verdict.NeedsFallback()),
	)
	return &GeneratedQuestion{ID: q.ID, Item: item, Fallback: verdict.NeedsFallback()}, nil
}

func (g *QuestionGenerator) attempt(ctx context.Context, req model.PracticeRequest, dims []uint) itemVerdict {
	start := time.Now()
	raw, err := g.llm.CompleteJSON(
		llm.WithPurpose(ctx, "generate"),
		buildGenerationMessages(req.Difficulty, req.QuestionType, dims),
		generationTemperature,
	)
	if err != nil {
		return rejectItem(fallbackCause(err), "%v", err)
	}

	logger.WithContext(ctx).Info("LLM生成完成",
		zap.Duration("elapsed", time.Since(start)),
		zap.Uints("dims", dims),
		zap.Int("difficulty", req.Difficulty),
	)
	return validateItem(raw, req, dims)
}

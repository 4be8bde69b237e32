package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"practice_backend/internal/llm"
	"practice_backend/internal/model"
	"practice_backend/internal/util"
	"practice_backend/pkg/logger"
	"practice_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type QuestionFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Question, error)
}

type AnswerStore interface {
	Create(ctx context.Context, rec *model.AnswerRecord) error
}

// AnswerResult 已落库的评分结果
type AnswerResult struct {
	RecordID uint
	Result   model.GradingResult
	Fallback bool
}

// gradingPayload 模型返回的评分结构
type gradingPayload struct {
	TotalScore      *float64           `json:"total_score"`
	SubitemScores   map[string]float64 `json:"subitem_scores"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
	Comments        *string            `json:"comments"`
	HitScorePoints  []string           `json:"hit_score_points"`
}

var errNullGrading = errors.New("grading payload is null")

// decodeGrading 解析模型评分。整体为 null 或 total_score 显式为 null 视为无法解析，缺省的 total_score 记 0 分。
func decodeGrading(raw []byte) (gradingPayload, error) {
	var p gradingPayload
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return p, err
	}
	if fields == nil {
		return p, errNullGrading
	}
	if v, ok := fields["total_score"]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return p, fmt.Errorf("%w: total_score", errNullGrading)
	}
	err := json.Unmarshal(raw, &p)
	return p, err
}

type AnswerGrader struct {
	llm       llm.Completer
	questions QuestionFinder
	answers   AnswerStore
}

func NewAnswerGrader(completer llm.Completer, questions QuestionFinder, answers AnswerStore) *AnswerGrader {
	return &AnswerGrader{llm: completer, questions: questions, answers: answers}
}

// Submit 评分并保存作答记录。题目不存在时不调用模型也不写库。
func (g *AnswerGrader) Submit(ctx context.Context, req model.AnswerRequest) (*AnswerResult, error) {
	log := logger.WithContext(ctx)

	q, err := g.questions.FindByID(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("load question %d: %w", req.QuestionID, err)
	}
	if q == nil {
		log.Error("评分失败：题目不存在", zap.Uint("q_id", req.QuestionID))
		return nil, fmt.Errorf("%w: q_id=%d", util.ErrQuestionNotFound, req.QuestionID)
	}

	result, fallback := g.Grade(ctx, q, req.OriginalAnswer)

	rec := &model.AnswerRecord{
		UserID:          req.UserID,
		QID:             q.ID,
		AnswerType:      util.AnswerTypeText,
		OriginalAnswer:  req.OriginalAnswer,
		TotalScore:      result.TotalScore,
		SubitemScores:   datatypes.NewJSONType(result.SubitemScores),
		DimensionScores: datatypes.NewJSONType(result.DimensionScores),
		Comments:        result.Comments,
		HitScorePoints:  result.HitScorePoints,
	}
	if err := g.answers.Create(ctx, rec); err != nil {
		log.Error("评分入库失败", zap.Error(err))
		return nil, fmt.Errorf("%w: insert answer record: %v", util.ErrPersistence, err)
	}

	log.Info("评分入库",
		zap.Uint("answer_record_id", rec.ID),
		zap.Float64("total", result.TotalScore),
		zap.Bool("fallback", fallback),
	)
	return &AnswerResult{RecordID: rec.ID, Result: result, Fallback: fallback}, nil
}

// Grade 返回评分结果以及是否使用了兜底评分
func (g *AnswerGrader) Grade(ctx context.Context, q *model.Question, answer string) (model.GradingResult, bool) {
	log := logger.WithContext(ctx)

	full := q.Score
	if full <= 0 {
		full = util.DefaultFullScore
	}

	start := time.Now()
	raw, err := g.llm.CompleteJSON(
		llm.WithPurpose(ctx, "grade"),
		buildGradingMessages(full, q.ScorePoints, q.ScoringCriteria, answer),
		gradingTemperature,
	)
	if err == nil {
		var p gradingPayload
		if p, err = decodeGrading(raw); err == nil {
			log.Info("LLM评分完成",
				zap.Duration("elapsed", time.Since(start)),
				zap.Uint("q_id", q.ID),
				zap.Int("full", full),
			)
			var total float64
			if p.TotalScore != nil {
				total = *p.TotalScore
			}
			return model.GradingResult{
				TotalScore:      ClampScore(total, float64(full)),
				SubitemScores:   p.SubitemScores,
				DimensionScores: p.DimensionScores,
				Comments:        p.Comments,
				HitScorePoints:  p.HitScorePoints,
			}, false
		}
		err = fmt.Errorf("decode grading: %w", err)
	}

	result := fallbackGrade(answer, full)
	log.Warn("LLM评分异常，使用兜底",
		zap.Error(err),
		zap.Float64("total", result.TotalScore),
	)
	monitoring.Fallbacks.WithLabelValues("grade", fallbackCause(err)).Inc()
	return result, true
}

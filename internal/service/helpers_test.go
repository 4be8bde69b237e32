package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"practice_backend/internal/config"
	"practice_backend/internal/model"
	"practice_backend/internal/repository"
	"practice_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", URL: "file::memory:"})
	require.NoError(t, err)
	return db
}

func fixedRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func seedQuestion(t *testing.T, db *gorm.DB, score int) *model.Question {
	t.Helper()
	q := &model.Question{
		QuestionType:    1,
		Difficulty:      1,
		Title:           "请指出两个关键教学问题",
		Material:        "材料",
		Score:           score,
		ScorePoints:     []string{"明确目标", "即时反馈"},
		ScoringCriteria: "问题识别准确、策略可操作",
	}
	require.NoError(t, repository.NewQuestionRepository(db).CreateWithDimensions(context.Background(), q, []uint{101}))
	return q
}

type failingCatalog struct{}

func (failingCatalog) ListIDs(context.Context) ([]uint, error) {
	return nil, errors.New("connection refused")
}

type failingQuestionStore struct{}

func (failingQuestionStore) CreateWithDimensions(context.Context, *model.Question, []uint) error {
	return errors.New("disk full")
}

type failingAnswerStore struct{}

func (failingAnswerStore) Create(context.Context, *model.AnswerRecord) error {
	return errors.New("disk full")
}

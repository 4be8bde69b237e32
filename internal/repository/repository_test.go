package repository

import (
	"context"
	"testing"

	"practice_backend/internal/config"
	"practice_backend/internal/model"
	"practice_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", URL: "file::memory:"})
	require.NoError(t, err)
	return db
}

func TestKnowledgeDimensionRepository(t *testing.T) {
	repo := NewKnowledgeDimensionRepository(newTestDB(t))

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{101, 102, 103, 104, 105, 106, 107, 108}, ids)

	dims, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, dims, 8)
	assert.NotEmpty(t, dims[0].Name)
}

func TestQuestionRepository_CreateWithDimensions(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	q := &model.Question{
		QuestionType: 1,
		Difficulty:   2,
		Title:        "题目",
		Material:     "材料",
		Score:        10,
		ScorePoints:  []string{"分层提问", "即时反馈"},
	}
	require.NoError(t, repo.CreateWithDimensions(ctx, q, []uint{103, 101, 9999}))
	require.NotZero(t, q.ID)

	var kds []uint
	require.NoError(t, db.Model(&model.QuestionKdRelation{}).Where("q_id = ?", q.ID).Order("kd_id asc").Pluck("kd_id", &kds).Error)
	assert.Equal(t, []uint{101, 103}, kds)

	got, err := repo.FindByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"分层提问", "即时反馈"}, []string(got.ScorePoints))
	assert.False(t, got.CreateTime.IsZero())

	missing, err := repo.FindByID(ctx, q.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuestionRepository_RollsBackOnRelationFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	first := &model.Question{QuestionType: 1, Difficulty: 1, Title: "a"}
	require.NoError(t, repo.CreateWithDimensions(ctx, first, []uint{101}))

	// 主键冲突使题目写入失败，关联也不应留下
	dup := &model.Question{ID: first.ID, QuestionType: 1, Difficulty: 1, Title: "b"}
	assert.Error(t, repo.CreateWithDimensions(ctx, dup, []uint{102}))

	var count int64
	require.NoError(t, db.Model(&model.QuestionKdRelation{}).Where("kd_id = ?", 102).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAnswerRecordRepository_Create(t *testing.T) {
	db := newTestDB(t)
	q := &model.Question{QuestionType: 1, Difficulty: 1, Title: "t"}
	require.NoError(t, NewQuestionRepository(db).CreateWithDimensions(context.Background(), q, nil))

	comment := "不错"
	rec := &model.AnswerRecord{
		QID:            q.ID,
		AnswerType:     1,
		OriginalAnswer: "作答",
		TotalScore:     7.5,
		SubitemScores:  datatypes.NewJSONType(map[string]float64{"length": 5}),
		Comments:       &comment,
		HitScorePoints: []string{"目标"},
	}
	require.NoError(t, NewAnswerRecordRepository(db).Create(context.Background(), rec))
	require.NotZero(t, rec.ID)

	var stored model.AnswerRecord
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.InDelta(t, 7.5, stored.TotalScore, 1e-9)
	assert.Equal(t, 5.0, stored.SubitemScores.Data()["length"])
	assert.Equal(t, []string{"目标"}, []string(stored.HitScorePoints))
}

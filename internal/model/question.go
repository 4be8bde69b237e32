package model

import (
	"time"

	"gorm.io/datatypes"
)

// Question 题库中的一道题，由生成结果落库而来
type Question struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// 1=简答 2=教学设计
	QuestionType int `gorm:"not null" json:"questionType"`
	// 1=初 2=中 3=高
	Difficulty int `gorm:"not null" json:"difficulty"`

	Title        string  `gorm:"type:text;not null" json:"title"`
	Material     string  `gorm:"type:text" json:"material"`
	Requirements *string `gorm:"size:500" json:"requirements,omitempty"`

	Score       int  `gorm:"default:10" json:"score"`
	SuggestTime *int `json:"suggestTime,omitempty"`
	WordLimit   *int `json:"wordLimit,omitempty"`

	// 核心知识点
	ScorePoints datatypes.JSONSlice[string] `json:"scorePoints"`

	AnswerContent   string `gorm:"type:text" json:"answerContent"`
	ScoringCriteria string `gorm:"type:text" json:"scoringCriteria"`

	CreateTime time.Time `gorm:"autoCreateTime" json:"createTime"`
}

func (Question) TableName() string {
	return "question"
}

// QuestionKdRelation 题目与知识维度的多对多关联
type QuestionKdRelation struct {
	QID  uint `gorm:"column:q_id;primaryKey"`
	KDID uint `gorm:"column:kd_id;primaryKey"`
}

func (QuestionKdRelation) TableName() string {
	return "question_kd_relation"
}

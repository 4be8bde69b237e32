package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerRecord 一次作答及其评分结果
type AnswerRecord struct {
	ID     uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *uint `gorm:"index" json:"userId,omitempty"`
	QID    uint  `gorm:"column:q_id;index;not null" json:"questionId"`
	// 1=文本 2=附件 3=自动
	AnswerType int `gorm:"default:1" json:"answerType"`

	OriginalAnswer string    `gorm:"type:text" json:"originalAnswer"`
	SubmitTime     time.Time `gorm:"autoCreateTime" json:"submitTime"`

	TotalScore      float64                                 `json:"totalScore"`
	SubitemScores   datatypes.JSONType[map[string]float64] `json:"subitemScores"`
	DimensionScores datatypes.JSONType[map[string]float64] `json:"dimensionScores"`
	Comments        *string                                 `gorm:"type:text" json:"comments,omitempty"`
	HitScorePoints  datatypes.JSONSlice[string]             `json:"hitScorePoints"`
}

func (AnswerRecord) TableName() string {
	return "answer_record"
}

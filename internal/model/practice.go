package model

// PracticeRequest 出题请求
type PracticeRequest struct {
	// 上一题得分，首次练习为空
	PriorScore   *int   `json:"prior_score" binding:"omitempty,min=0,max=10"`
	Dimensions   []uint `json:"dimensions" binding:"required,min=1"`
	Difficulty   int    `json:"difficulty" binding:"required,oneof=1 2 3"`
	QuestionType int    `json:"question_type" binding:"required,oneof=1 2"`
	UserID       *uint  `json:"user_id"`
}

// PracticeItem 生成（或兜底）得到的一道练习题
type PracticeItem struct {
	Material         string   `json:"material"`
	Prompt           string   `json:"prompt"`
	ReferenceAnswer  string   `json:"reference_answer"`
	Rubric           string   `json:"rubric"`
	Dimensions       []uint   `json:"dimensions"`
	CorePoints       []string `json:"core_points"`
	Difficulty       int      `json:"difficulty"`
	QuestionType     int      `json:"question_type"`
	FullScore        int      `json:"full_score"`
	SuggestedMinutes int      `json:"suggested_minutes"`
	WordLimit        *int     `json:"word_limit"`
}

type GenerateResponse struct {
	QuestionID uint         `json:"question_id"`
	Item       PracticeItem `json:"item"`
}

// AnswerRequest 作答提交
type AnswerRequest struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	OriginalAnswer string `json:"original_answer" binding:"required,min=1"`
	UserID         *uint  `json:"user_id"`
}

// GradingResult 一次评分的结果
type GradingResult struct {
	TotalScore      float64            `json:"total_score"`
	SubitemScores   map[string]float64 `json:"subitem_scores"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
	Comments        *string            `json:"comments"`
	HitScorePoints  []string           `json:"hit_score_points"`
}

type AnswerResponse struct {
	AnswerRecordID uint `json:"answer_record_id"`
	GradingResult
}

// ToQuestion 转换为待落库的题目记录
func (p PracticeItem) ToQuestion() *Question {
	suggest := p.SuggestedMinutes
	return &Question{
		QuestionType:    p.QuestionType,
		Difficulty:      p.Difficulty,
		Title:           p.Prompt,
		Material:        p.Material,
		Score:           p.FullScore,
		SuggestTime:     &suggest,
		WordLimit:       p.WordLimit,
		ScorePoints:     p.CorePoints,
		AnswerContent:   p.ReferenceAnswer,
		ScoringCriteria: p.Rubric,
	}
}

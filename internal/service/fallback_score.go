package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"practice_backend/internal/model"
)

const (
	keywordBonus    = 0.8
	maxKeywordScore = 3.0
	fallbackComment = "（兜底机评）表达清晰，建议补充具体案例与证据支持。"
)

var fallbackKeywords = []string{"目标", "提问", "反馈", "评价", "设计"}

// ClampScore 将分数限制在 [0, full]
func ClampScore(score, full float64) float64 {
	return math.Max(0, math.Min(full, score))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// fallbackGrade 按长度与关键词命中估分，不依赖模型
func fallbackGrade(answer string, fullScore int) model.GradingResult {
	text := strings.TrimSpace(answer)
	full := float64(fullScore)

	base := math.Min(float64(utf8.RuneCountInString(text))/100*full, full)

	var bonus float64
	var hits []string
	for _, kw := range fallbackKeywords {
		if strings.Contains(text, kw) {
			bonus += keywordBonus
			hits = append(hits, kw)
		}
	}

	comment := fallbackComment
	return model.GradingResult{
		TotalScore: round1(ClampScore(base+bonus, full)),
		SubitemScores: map[string]float64{
			"length":   round1(math.Min(base, full)),
			"keywords": round1(math.Min(bonus, maxKeywordScore)),
		},
		Comments:       &comment,
		HitScorePoints: hits,
	}
}

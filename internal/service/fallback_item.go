package service

import (
	"fmt"

	"practice_backend/internal/model"
	"practice_backend/internal/util"
)

const (
	fallbackPrompt          = "请基于材料指出两个关键教学问题，并提出两条可操作的改进策略（说明原因）。"
	fallbackReferenceAnswer = "要点1：目标可观察；要点2：分层提问+等待时间；要点3：同伴互评+教师反馈闭环；要点4：任务产出检核。"
	fallbackRubric          = "满分：问题识别准确、策略可操作且对应；部分：能识别问题但策略笼统；不得分：偏题或未作答。"
	fallbackWordLimit       = 200
)

var canonicalCorePoints = [...]string{"明确目标", "分层提问", "即时反馈", "同伴互评"}

// fallbackItem 不依赖模型的固定模板题，结构上总是合法
func fallbackItem(req model.PracticeRequest, dims []uint, rng RandSource) model.PracticeItem {
	material := fmt.Sprintf("【情境材料】在一节中文为第二语言的课堂中，部分学生口语表达缺乏信心，讨论停留在表层。"+
		"教师尝试使用分层提问、同伴互评与即时反馈提升互动质量。关注维度ID：%s。", formatIDs(dims))

	points := canonicalCorePoints
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })
	n := minCorePoints + rng.IntN(maxCorePoints-minCorePoints+1)
	corePoints := make([]string, n)
	copy(corePoints, points[:n])

	dimsCopy := make([]uint, len(dims))
	copy(dimsCopy, dims)

	wordLimit := fallbackWordLimit
	return model.PracticeItem{
		Material:         padMaterial(material, MinMaterialRunes),
		Prompt:           fallbackPrompt,
		ReferenceAnswer:  fallbackReferenceAnswer,
		Rubric:           fallbackRubric,
		Dimensions:       dimsCopy,
		CorePoints:       corePoints,
		Difficulty:       req.Difficulty,
		QuestionType:     req.QuestionType,
		FullScore:        util.DefaultFullScore,
		SuggestedMinutes: util.DefaultSuggestedMinutes,
		WordLimit:        &wordLimit,
	}
}

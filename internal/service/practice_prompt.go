package service

import (
	"fmt"
	"strconv"
	"strings"

	"practice_backend/internal/llm"
	"practice_backend/internal/util"
)

const (
	generationTemperature = 0.2
	gradingTemperature    = 0.0
)

const generationSystemPrompt = "你是国际教师资格教研专家。基于【维度ID】与【难度】生成一题【%s】。\n" +
	"严格以 JSON 输出（不要任何多余文字）。字段：材料(≥150字)、题目、参考答案、评分标准、维度(维度ID数组)、" +
	"核心知识点(2-4个短语)、难度(1/2/3)、题型(%d)、满分、建议用时、字数上限。"

const gradingSystemPrompt = "你是严格的阅卷老师。根据【评分标准】与【核心要点】对【作答】评分。\n" +
	"只输出 JSON：total_score(0-满分)、subitem_scores(要点->分)、comments、hit_score_points(数组)。"

var questionTypeNames = map[int]string{
	util.QuestionTypeShortAnswer:  "简答题",
	util.QuestionTypeLessonDesign: "教学设计题",
}

// questionTypeName 未知题型按简答题处理
func questionTypeName(t int) string {
	if name, ok := questionTypeNames[t]; ok {
		return name
	}
	return questionTypeNames[util.QuestionTypeShortAnswer]
}

// formatIDs 输出形如 [101, 103]
func formatIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func buildGenerationMessages(difficulty, questionType int, dims []uint) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(generationSystemPrompt, questionTypeName(questionType), questionType)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("维度ID: %s\n难度: %d\n题型: %d\n仅输出JSON。", formatIDs(dims), difficulty, questionType)},
	}
}

func buildGradingMessages(fullScore int, corePoints []string, rubric, answer string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: gradingSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("满分: %d\n核心要点: [%s]\n评分标准: %s\n作答: %s",
			fullScore, strings.Join(corePoints, "、"), rubric, answer)},
	}
}

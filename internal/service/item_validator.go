package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"practice_backend/internal/model"
	"practice_backend/internal/util"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	// MinMaterialRunes 落库题目的材料最短长度
	MinMaterialRunes = 150
	// MinModelMaterialRunes 模型材料低于该长度直接弃用
	MinModelMaterialRunes = 120

	minCorePoints = 2
	maxCorePoints = 4
)

// materialFiller 材料不足时重复追加的句子
const materialFiller = " 本课以交际为导向，教师根据学生水平分层提问，并通过同伴互评与即时反馈促进学习动机。"

const practiceItemSchemaURL = "schema://practice-item.json"

// practiceItemSchema 模型输出的结构约束，字段名与提示词保持一致
const practiceItemSchema = `{
  "type": "object",
  "required": ["材料", "题目", "参考答案", "评分标准", "核心知识点"],
  "properties": {
    "材料":     {"type": "string"},
    "题目":     {"type": "string", "minLength": 1},
    "参考答案": {"type": "string"},
    "评分标准": {"type": "string"},
    "维度":     {"type": "array", "items": {"type": "integer", "minimum": 0}},
    "核心知识点": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "难度":     {"enum": [1, 2, 3]},
    "题型":     {"enum": [1, 2]},
    "满分":     {"type": "integer", "minimum": 1},
    "建议用时": {"type": "integer", "minimum": 1},
    "字数上限": {"type": ["integer", "null"], "minimum": 1}
  }
}`

var (
	itemSchemaOnce sync.Once
	itemSchema     *jsonschema.Schema
	itemSchemaErr  error
)

func compiledItemSchema() (*jsonschema.Schema, error) {
	itemSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(practiceItemSchema), &doc); err != nil {
			itemSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(practiceItemSchemaURL, doc); err != nil {
			itemSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		itemSchema, itemSchemaErr = c.Compile(practiceItemSchemaURL)
	})
	return itemSchema, itemSchemaErr
}

// itemPayload 模型返回的题目结构（中文键），只在这里映射为 PracticeItem
type itemPayload struct {
	Material        string   `json:"材料"`
	Prompt          string   `json:"题目"`
	ReferenceAnswer string   `json:"参考答案"`
	Rubric          string   `json:"评分标准"`
	Dimensions      []uint   `json:"维度"`
	CorePoints      []string `json:"核心知识点"`
	Difficulty      *int     `json:"难度"`
	QuestionType    *int     `json:"题型"`
	FullScore       *int     `json:"满分"`
	SuggestMinutes  *int     `json:"建议用时"`
	WordLimit       *int     `json:"字数上限"`
}

// itemVerdict 校验结果：Reason 非空表示需要走兜底模板
type itemVerdict struct {
	Item   model.PracticeItem
	Reason string
	// Cause 用作指标标签：unavailable / malformed / invalid
	Cause string
}

func (v itemVerdict) NeedsFallback() bool {
	return v.Reason != ""
}

func acceptItem(item model.PracticeItem) itemVerdict {
	return itemVerdict{Item: item}
}

func rejectItem(cause, format string, args ...any) itemVerdict {
	return itemVerdict{Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// validateItem 对模型输出做结构校验、补默认值与语义检查
func validateItem(raw json.RawMessage, req model.PracticeRequest, dims []uint) itemVerdict {
	schema, err := compiledItemSchema()
	if err != nil {
		return rejectItem("invalid", "schema unavailable: %v", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return rejectItem("malformed", "decode: %v", err)
	}
	if err := schema.Validate(doc); err != nil {
		return rejectItem("invalid", "schema: %v", err)
	}

	var p itemPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return rejectItem("invalid", "decode payload: %v", err)
	}

	item := model.PracticeItem{
		Material:         strings.TrimSpace(p.Material),
		Prompt:           p.Prompt,
		ReferenceAnswer:  p.ReferenceAnswer,
		Rubric:           p.Rubric,
		Dimensions:       restrictDimensions(p.Dimensions, dims),
		CorePoints:       p.CorePoints,
		Difficulty:       intOr(p.Difficulty, req.Difficulty),
		QuestionType:     intOr(p.QuestionType, req.QuestionType),
		FullScore:        intOr(p.FullScore, util.DefaultFullScore),
		SuggestedMinutes: intOr(p.SuggestMinutes, util.DefaultSuggestedMinutes),
		WordLimit:        p.WordLimit,
	}

	if n := utf8.RuneCountInString(item.Material); n < MinModelMaterialRunes {
		return rejectItem("invalid", "material too short: %d runes", n)
	}
	if n := len(item.CorePoints); n < minCorePoints || n > maxCorePoints {
		return rejectItem("invalid", "core points count %d out of range", n)
	}

	item.Material = padMaterial(item.Material, MinMaterialRunes)
	return acceptItem(item)
}

// restrictDimensions 只保留本次选中的维度，结果为空时退回 dims
func restrictDimensions(reported, dims []uint) []uint {
	if len(reported) == 0 {
		return dims
	}
	allowed := make(map[uint]bool, len(dims))
	for _, id := range dims {
		allowed[id] = true
	}
	seen := make(map[uint]bool, len(reported))
	var out []uint
	for _, id := range reported {
		if allowed[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return dims
	}
	return out
}

func padMaterial(text string, n int) string {
	var b strings.Builder
	b.WriteString(text)
	length := utf8.RuneCountInString(text)
	fillerLen := utf8.RuneCountInString(materialFiller)
	for length < n {
		b.WriteString(materialFiller)
		length += fillerLen
	}
	return b.String()
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

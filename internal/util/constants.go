package util

// 题型：1=简答题 2=教学设计题
const (
	QuestionTypeShortAnswer  = 1
	QuestionTypeLessonDesign = 2
)

// 作答类型：1=文本 2=附件 3=自动
const AnswerTypeText = 1

const (
	DefaultFullScore        = 10
	DefaultSuggestedMinutes = 10
)

const (
	HeaderRequestID    = "X-Request-ID"
	HeaderResponseTime = "X-Response-Time-ms"
)

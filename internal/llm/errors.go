package llm

import "errors"

var (
	// ErrModelUnavailable 传输失败、超时或非 2xx 响应
	ErrModelUnavailable = errors.New("language model unavailable")
	// ErrModelOutputMalformed 重新提示一次后仍无法解析为 JSON
	ErrModelOutputMalformed = errors.New("language model output malformed")
)

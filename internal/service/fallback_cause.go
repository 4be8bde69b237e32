package service

import (
	"errors"

	"practice_backend/internal/llm"
)

// fallbackCause 将模型网关错误归类为指标标签
func fallbackCause(err error) string {
	switch {
	case errors.Is(err, llm.ErrModelUnavailable):
		return "unavailable"
	case errors.Is(err, llm.ErrModelOutputMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Offline 用于 mock 模式：从不访问网络，调用方总是走兜底
type Offline struct {
	Reason string
}

func (o Offline) CompleteJSON(context.Context, []Message, float64) (json.RawMessage, error) {
	reason := o.Reason
	if reason == "" {
		reason = "mock mode"
	}
	return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, reason)
}

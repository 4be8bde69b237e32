package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose 为调用打上用途标签（generate / grade），用于指标与链路
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

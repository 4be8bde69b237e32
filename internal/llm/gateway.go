package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"practice_backend/pkg/logger"
	"practice_backend/pkg/monitoring"
	"practice_backend/pkg/tracing"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// StrictJSONInstruction 首次解析失败后追加的系统提示
const StrictJSONInstruction = "仅输出严格 JSON，不要解释文字。"

// Role 消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Completer 发送一组消息并返回解析后的 JSON
type Completer interface {
	CompleteJSON(ctx context.Context, messages []Message, temperature float64) (json.RawMessage, error)
}

// Config 模型网关配置
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gateway 对接 OpenAI 兼容的 chat/completions 接口
type Gateway struct {
	client *openai.Client
	model  string
}

var whitespace = regexp.MustCompile(`\s+`)

// SanitizeBaseURL 去除空白、补全协议并去掉末尾斜杠
func SanitizeBaseURL(raw string) (string, error) {
	raw = whitespace.ReplaceAllString(strings.TrimSpace(raw), "")
	if raw == "" {
		return "", errors.New("LLM base URL is empty (e.g. http://10.110.3.61:9997/v1)")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return strings.TrimSuffix(raw, "/"), nil
}

// NewHTTPClient 构造出站客户端：不读取系统代理，带超时与链路追踪
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   timeout,
	}
}

// NewGateway httpClient 由调用方持有并注入，为 nil 时按 cfg.Timeout 新建
func NewGateway(cfg Config, httpClient *http.Client) (*Gateway, error) {
	baseURL, err := SanitizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		return nil, errors.New("LLM model name is empty")
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = baseURL
	oc.HTTPClient = httpClient

	return &Gateway{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
	}, nil
}

func (g *Gateway) ModelID() string {
	return g.model
}

func (g *Gateway) CompleteJSON(ctx context.Context, messages []Message, temperature float64) (json.RawMessage, error) {
	purpose := PurposeFrom(ctx)
	ctx, span := tracing.Tracer.Start(ctx, "llm.complete_json", trace.WithAttributes(
		attribute.String("llm.purpose", purpose),
		attribute.String("llm.model", g.model),
		attribute.Float64("llm.temperature", temperature),
	))
	defer span.End()

	start := time.Now()
	raw, err := g.completeJSON(ctx, messages, temperature)
	elapsed := time.Since(start)

	monitoring.LLMDuration.WithLabelValues(purpose).Observe(elapsed.Seconds())
	monitoring.LLMRequests.WithLabelValues(purpose, outcome(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	logger.WithContext(ctx).Debug("LLM JSON completion done",
		zap.String("purpose", purpose),
		zap.Duration("elapsed", elapsed),
	)
	return raw, nil
}

func (g *Gateway) completeJSON(ctx context.Context, messages []Message, temperature float64) (json.RawMessage, error) {
	text, err := g.chat(ctx, messages, temperature)
	if err != nil {
		return nil, err
	}
	if raw, ok := parseJSON(text); ok {
		return raw, nil
	}

	logger.WithContext(ctx).Warn("LLM output is not JSON, re-prompting once",
		zap.String("purpose", PurposeFrom(ctx)),
		zap.String("output", truncate(text, 200)),
	)

	retry := make([]Message, 0, len(messages)+1)
	retry = append(retry, messages...)
	retry = append(retry, Message{Role: RoleSystem, Content: StrictJSONInstruction})

	text, err = g.chat(ctx, retry, temperature)
	if err != nil {
		return nil, err
	}
	if raw, ok := parseJSON(text); ok {
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrModelOutputMalformed, truncate(text, 200))
}

func (g *Gateway) chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: float32(temperature),
	}
	// temperature 字段带 omitempty，0 会被省略而落到服务端默认值
	if temperature <= 0 {
		req.Temperature = math.SmallestNonzeroFloat32
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrModelUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func parseJSON(text string) (json.RawMessage, bool) {
	s := StripCodeFences(text)
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrModelOutputMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Auth string
	Body struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
}

// fakeChatServer 依次返回 replies 中的内容作为 assistant 消息
type fakeChatServer struct {
	mu       sync.Mutex
	replies  []string
	requests []capturedRequest
}

func (f *fakeChatServer) handler(w http.ResponseWriter, r *http.Request) {
	var cr capturedRequest
	cr.Auth = r.Header.Get("Authorization")
	_ = json.NewDecoder(r.Body).Decode(&cr.Body)

	f.mu.Lock()
	f.requests = append(f.requests, cr)
	reply := ""
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "qwen3",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			},
		},
	})
}

func newTestGateway(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	g, err := NewGateway(Config{
		BaseURL: server.URL + "/v1/",
		APIKey:  "sk-local",
		Model:   "qwen3",
		Timeout: timeout,
	}, nil)
	require.NoError(t, err)
	return g
}

func userMessages() []Message {
	return []Message{
		{Role: RoleSystem, Content: "你是阅卷老师"},
		{Role: RoleUser, Content: "作答: ..."},
	}
}

func TestGateway_HappyPath(t *testing.T) {
	srv := &fakeChatServer{replies: []string{`{"total_score": 7}`}}
	g := newTestGateway(t, srv.handler, 5*time.Second)

	raw, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_score": 7}`, string(raw))

	require.Len(t, srv.requests, 1)
	req := srv.requests[0]
	assert.Equal(t, "Bearer sk-local", req.Auth)
	assert.Equal(t, "qwen3", req.Body.Model)
	assert.InDelta(t, 0.2, req.Body.Temperature, 1e-6)
	require.Len(t, req.Body.Messages, 2)
	assert.Equal(t, "system", req.Body.Messages[0].Role)
	assert.Equal(t, "user", req.Body.Messages[1].Role)
}

func TestGateway_ZeroTemperatureIsSent(t *testing.T) {
	srv := &fakeChatServer{replies: []string{`{}`}}
	g := newTestGateway(t, srv.handler, 5*time.Second)

	_, err := g.CompleteJSON(context.Background(), userMessages(), 0)
	require.NoError(t, err)
	require.Len(t, srv.requests, 1)
	assert.InDelta(t, 0, srv.requests[0].Body.Temperature, 1e-6)
}

func TestGateway_StripsFences(t *testing.T) {
	srv := &fakeChatServer{replies: []string{"```json\n{\"材料\": \"x\"}\n```"}}
	g := newTestGateway(t, srv.handler, 5*time.Second)

	raw, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"材料": "x"}`, string(raw))
	assert.Len(t, srv.requests, 1)
}

func TestGateway_RepromptsOnceOnProse(t *testing.T) {
	srv := &fakeChatServer{replies: []string{"好的，下面是题目：……", `{"ok": true}`}}
	g := newTestGateway(t, srv.handler, 5*time.Second)

	raw, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(raw))

	require.Len(t, srv.requests, 2)
	second := srv.requests[1].Body.Messages
	require.Len(t, second, 3)
	assert.Equal(t, "system", second[2].Role)
	assert.Equal(t, StrictJSONInstruction, second[2].Content)
}

func TestGateway_MalformedAfterReprompt(t *testing.T) {
	srv := &fakeChatServer{replies: []string{"not json", "still not json"}}
	g := newTestGateway(t, srv.handler, 5*time.Second)

	_, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelOutputMalformed), "got %v", err)
	assert.Len(t, srv.requests, 2)
}

func TestGateway_ServerErrorIsUnavailable(t *testing.T) {
	var calls atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "boom"},
		})
	}
	g := newTestGateway(t, handler, 5*time.Second)

	_, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelUnavailable), "got %v", err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGateway_TimeoutIsUnavailable(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}
	g := newTestGateway(t, handler, 50*time.Millisecond)

	_, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelUnavailable), "got %v", err)
}

func TestGateway_NoChoicesIsUnavailable(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "choices": []any{}})
	}
	g := newTestGateway(t, handler, 5*time.Second)

	_, err := g.CompleteJSON(context.Background(), userMessages(), 0.2)
	assert.True(t, errors.Is(err, ErrModelUnavailable), "got %v", err)
}

func TestSanitizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://10.110.3.61:9997/v1", "http://10.110.3.61:9997/v1", false},
		{" http://10.110.3.61:9997/v1/ ", "http://10.110.3.61:9997/v1", false},
		{"10.110.3.61:9997/v1", "http://10.110.3.61:9997/v1", false},
		{"https://api.example.com/v1/", "https://api.example.com/v1", false},
		{"http://host: 9997/v1", "http://host:9997/v1", false},
		{"   ", "", true},
	}
	for _, tt := range tests {
		got, err := SanitizeBaseURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewGateway_Validation(t *testing.T) {
	_, err := NewGateway(Config{BaseURL: "", Model: "qwen3"}, nil)
	assert.Error(t, err)

	_, err = NewGateway(Config{BaseURL: "localhost:9997/v1"}, nil)
	assert.Error(t, err)

	g, err := NewGateway(Config{BaseURL: "localhost:9997/v1", Model: "qwen3"}, &http.Client{})
	require.NoError(t, err)
	assert.Equal(t, "qwen3", g.ModelID())
}

func TestOffline_AlwaysUnavailable(t *testing.T) {
	_, err := Offline{}.CompleteJSON(context.Background(), userMessages(), 0)
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestMockCompleter_FIFO(t *testing.T) {
	m := NewMockCompleter(
		MockResponse{Content: `{"a":1}`},
		MockResponse{Err: ErrModelOutputMalformed},
	)

	raw, err := m.CompleteJSON(context.Background(), userMessages(), 0.2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))

	_, err = m.CompleteJSON(context.Background(), userMessages(), 0.2)
	assert.ErrorIs(t, err, ErrModelOutputMalformed)

	_, err = m.CompleteJSON(context.Background(), userMessages(), 0.2)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	assert.Equal(t, 3, m.CallCount())
}

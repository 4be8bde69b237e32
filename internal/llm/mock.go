package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse MockCompleter 的预置响应
type MockResponse struct {
	Content string
	Err     error
}

// MockCall 记录一次调用的入参
type MockCall struct {
	Messages    []Message
	Temperature float64
}

// MockCompleter 按 FIFO 返回预置响应并记录调用，供测试使用
type MockCompleter struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

func NewMockCompleter(responses ...MockResponse) *MockCompleter {
	return &MockCompleter{responses: responses}
}

// CompleteJSON 队列为空时返回 ErrModelUnavailable
func (m *MockCompleter) CompleteJSON(_ context.Context, messages []Message, temperature float64) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Messages: messages, Temperature: temperature})

	if len(m.responses) == 0 {
		return nil, ErrModelUnavailable
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return json.RawMessage(resp.Content), nil
}

func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

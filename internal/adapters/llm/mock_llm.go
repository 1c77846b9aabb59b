package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/finnmcm/philo-ai/internal/domain"
)

// MockCall records one Generate invocation for later inspection in tests.
type MockCall struct {
	System string
	Turns  []domain.ChatTurn
}

// MockLLM is a scripted domain.TextGenerator for tests and local mode.
// Replies are consumed in order; when the script runs out (or was never set)
// it echoes the last user turn. Set Err to force every call to fail.
type MockLLM struct {
	mu      sync.Mutex
	replies []string
	Err     error
	Calls   []MockCall
}

func NewMockLLM(replies ...string) *MockLLM {
	return &MockLLM{replies: replies}
}

func (m *MockLLM) Generate(ctx context.Context, system string, turns []domain.ChatTurn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{System: system, Turns: turns})

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.replies) > 0 {
		reply := m.replies[0]
		m.replies = m.replies[1:]
		return reply, nil
	}

	last := ""
	if len(turns) > 0 {
		last = turns[len(turns)-1].Text
	}
	return fmt.Sprintf("I hear you. You said %q. Tell me more about how that sits with you.", last), nil
}

// CallCount returns how many times Generate ran.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

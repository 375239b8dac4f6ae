package tokenstore

import (
	"context"
	"sync"
)

// Memory is a Store backed by a map. Useful for tests and short-lived
// processes.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]Tokens
}

func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]Tokens)}
}

func (m *Memory) Load(_ context.Context, id string) (Tokens, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tokens[id]
	if !ok {
		return Tokens{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) Save(_ context.Context, id string, tokens Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[id] = tokens
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, id)
	return nil
}

func (m *Memory) Close() error { return nil }

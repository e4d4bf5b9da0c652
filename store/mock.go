package store

import (
	"context"
	"sync"
	"time"
)

// MockStore is an in-memory guild store for testing. Delay and Err simulate
// a slow or failing backend.
type MockStore struct {
	mu        sync.Mutex
	Languages map[string]string // Guild ID to language code
	Delay     time.Duration     // Artificial latency before responding
	Err       error             // Error returned instead of a language
	callCount int
}

// NewMockStore creates a mock store with the given guild languages.
func NewMockStore(languages map[string]string) *MockStore {
	if languages == nil {
		languages = make(map[string]string)
	}
	return &MockStore{Languages: languages}
}

// GuildLanguage returns the configured language after the configured delay.
// The delay respects context cancellation so timed-out lookups return early.
func (m *MockStore) GuildLanguage(ctx context.Context, guildID string) (string, error) {
	m.mu.Lock()
	m.callCount++
	delay := m.Delay
	err := m.Err
	lang := m.Languages[guildID]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return "", err
	}
	return lang, nil
}

// CallCount reports how many lookups have been issued.
func (m *MockStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
}

// Verify MockStore implements GuildStore.
var _ GuildStore = (*MockStore)(nil)

package devicestore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is the in-process Lister used by local runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]Device
}

func NewMemory() *MemoryStore {
	return &MemoryStore{byUser: make(map[string][]Device)}
}

func (s *MemoryStore) Put(sessionID string, devices ...Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[strings.TrimSpace(sessionID)] = append(s.byUser[strings.TrimSpace(sessionID)], devices...)
}

func (s *MemoryStore) ListForUser(_ context.Context, sessionID string) ([]Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUser[strings.TrimSpace(sessionID)], nil
}

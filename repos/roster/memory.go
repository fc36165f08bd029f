package roster

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	players []Player
	version int64
	exists  bool

	// FailWith, when set, is returned by every operation. Lets tests
	// simulate an unreachable backend.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) GetPlayers(ctx context.Context) ([]Player, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, 0, s.FailWith
	}
	if !s.exists {
		return nil, 0, ErrNotFound
	}
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out, s.version, nil
}

func (s *MemoryStore) SetPlayers(ctx context.Context, players []Player) (int64, error) {
	return s.replace(players, -1)
}

func (s *MemoryStore) SetPlayersVersioned(ctx context.Context, players []Player, version int64) (int64, error) {
	return s.replace(players, version)
}

func (s *MemoryStore) replace(players []Player, expected int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	if expected >= 0 && s.version != expected {
		return 0, ErrVersionMismatch
	}
	s.players = make([]Player, len(players))
	copy(s.players, players)
	s.version++
	s.exists = true
	return s.version, nil
}

func (s *MemoryStore) UpdateStatusByEmail(ctx context.Context, email string, rs RsvpStatus) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if !s.exists {
		return nil, ErrNotFound
	}
	idx := FindByEmail(s.players, email)
	if idx < 0 {
		return nil, ErrPlayerNotFound
	}
	s.players[idx].Status = rs
	s.version++
	p := s.players[idx]
	return &p, nil
}

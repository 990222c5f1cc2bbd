package dashboard

import (
	"context"
	"sync"
)

// InMemoryPanelStore keeps the board in process memory. State is volatile and
// lost on restart.
type InMemoryPanelStore struct {
	mu    sync.RWMutex
	board Board
}

// NewInMemoryPanelStore seeds the store with the provided board.
func NewInMemoryPanelStore(seed Board) *InMemoryPanelStore {
	return &InMemoryPanelStore{board: seed.Clone()}
}

// Snapshot returns a deep copy of the current board.
func (s *InMemoryPanelStore) Snapshot(ctx context.Context) (Board, error) {
	if err := ctx.Err(); err != nil {
		return Board{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone(), nil
}

// Update runs fn against a working copy and commits it only when fn succeeds
// and the board remains consistent.
func (s *InMemoryPanelStore) Update(ctx context.Context, fn func(tx *Board) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.board.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	if err := working.CheckConsistency(); err != nil {
		return err
	}
	s.board = working
	return nil
}

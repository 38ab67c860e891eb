package player

import (
	"context"
	"sync"
)

// MemoryRepo keeps player state in process memory. Used by tests and by
// ephemeral sessions that never persist.
type MemoryRepo struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{states: make(map[string]State)}
}

func (r *MemoryRepo) Load(_ context.Context, userID string) (State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[userID]
	if !ok {
		return State{}, false, nil
	}
	return normalize(s.Clone()), true, nil
}

func (r *MemoryRepo) Save(_ context.Context, userID string, s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = s.Clone()
	return nil
}

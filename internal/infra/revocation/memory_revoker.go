package revocation

import (
	"context"
	"sync"
	"time"

	"academy/internal/domain/service"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevoker keeps revoked token IDs in process memory.
func NewMemoryRevoker() service.TokenRevoker {
	return &memoryRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *memoryRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)

	if until.After(now) {
		r.revoked[tokenID] = until
	}

	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !r.now().Before(until) {
		delete(r.revoked, tokenID)

		return false, nil
	}

	return true, nil
}

// prune drops entries whose tokens have expired anyway. Caller holds mu.
func (r *memoryRevoker) prune(now time.Time) {
	for id, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, id)
		}
	}
}

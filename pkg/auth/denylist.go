package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist records revoked token ids until the token would have expired
// anyway.
type Denylist interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// MemoryDenylist keeps revocations in process memory. Revocations are lost
// on restart; use a shared store when several instances serve the admin.
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *MemoryDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, k)
		}
	}
	if until.After(now) {
		d.revoked[id] = until
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[id]
	return ok && exp.After(d.now()), nil
}

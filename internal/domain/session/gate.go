package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
)

// FlagKey is the single key the gate persists.
const FlagKey = "admin_session"

const flagValue = "true"

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Store persists one flag between visits. Cookies, redis or process memory
// all fit behind it.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// Gate is the admin session state machine: Anonymous and Authenticated,
// moved by Login and Logout.
type Gate struct {
	mu     sync.RWMutex
	secret string
	store  Store
	state  State
}

// NewGate restores the state persisted in store. An empty secret makes the
// gate unable to authenticate; a persisted flag is still honored.
func NewGate(ctx context.Context, secret string, store Store) (*Gate, error) {
	g := &Gate{secret: secret, store: store}
	v, ok, err := store.Get(ctx, FlagKey)
	if err != nil {
		return nil, fmt.Errorf("read session flag: %w", err)
	}
	if ok && v == flagValue {
		g.state = Authenticated
	}
	return g, nil
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Gate) IsAuthenticated() bool {
	return g.State() == Authenticated
}

// Login compares password with the configured secret. A mismatch is not an
// error: it returns false and leaves the state as it was.
func (g *Gate) Login(ctx context.Context, password string) (bool, error) {
	if g.secret == "" || subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Set(ctx, FlagKey, flagValue); err != nil {
		return false, fmt.Errorf("persist session flag: %w", err)
	}
	g.state = Authenticated
	return true, nil
}

// Logout always leaves the gate anonymous. The returned error only reports
// a failure to clear the persisted flag.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Anonymous
	if err := g.store.Clear(ctx, FlagKey); err != nil {
		return fmt.Errorf("clear session flag: %w", err)
	}
	return nil
}

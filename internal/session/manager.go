package session

import (
	"context"
	"errors"
	"fmt"
)

// Manager routes sessions between short-lived storage (ends with the browser
// session) and long-lived storage ("keep me logged in").
type Manager struct {
	short Store
	long  Store
}

// NewManager creates a manager over the two stores.
func NewManager(short, long Store) *Manager {
	return &Manager{short: short, long: long}
}

func (m *Manager) Short() Store { return m.short }
func (m *Manager) Long() Store  { return m.long }

func (m *Manager) storesFor(remember bool) (target, other Store) {
	if remember {
		return m.long, m.short
	}
	return m.short, m.long
}

// Persist writes sess to long-lived storage when sess.Remember is set and to
// short-lived storage otherwise, removing it from the other one.
func (m *Manager) Persist(ctx context.Context, sess *Session) error {
	target, other := m.storesFor(sess.Remember)
	if err := target.Set(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := other.Clear(ctx, sess.ID); err != nil {
		return fmt.Errorf("clear stale session: %w", err)
	}
	return nil
}

// Lookup finds a session in short-lived storage, then long-lived storage.
func (m *Manager) Lookup(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	sess, err := m.short.Get(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return m.long.Get(ctx, id)
}

// Clear removes the session from both stores.
func (m *Manager) Clear(ctx context.Context, id string) error {
	return errors.Join(m.short.Clear(ctx, id), m.long.Clear(ctx, id))
}

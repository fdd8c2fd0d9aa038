package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapup/internal/cache"
	"mapup/internal/model"
)

func newSession(remember bool) *Session {
	return &Session{
		ID:       NewID(),
		Token:    "tok-1",
		Role:     model.RoleAdmin,
		Username: "sudhakar27",
		LoggedIn: true,
		Remember: remember,
	}
}

func TestManager_PersistShortLived(t *testing.T) {
	ctx := context.Background()
	short, long := NewMemoryStore(0), NewMemoryStore(0)
	m := NewManager(short, long)

	sess := newSession(false)
	require.NoError(t, m.Persist(ctx, sess))

	got, err := short.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)

	_, err = long.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_PersistLongLivedMovesSession(t *testing.T) {
	ctx := context.Background()
	short, long := NewMemoryStore(0), NewMemoryStore(0)
	m := NewManager(short, long)

	sess := newSession(false)
	require.NoError(t, m.Persist(ctx, sess))
	sess.Remember = true
	require.NoError(t, m.Persist(ctx, sess))

	_, err := short.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := m.Lookup(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, got.Remember)
}

func TestManager_LookupAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(0), NewMemoryStore(0))

	_, err := m.Lookup(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	sess := newSession(true)
	require.NoError(t, m.Persist(ctx, sess))
	require.NoError(t, m.Clear(ctx, sess.ID))
	_, err = m.Lookup(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 10, 28, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess := newSession(false)
	require.NoError(t, s.Set(ctx, sess))
	_, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_SetSweepsExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 10, 28, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(ctx, newSession(false)))
	}
	assert.Equal(t, 3, s.Len())

	now = now.Add(2 * time.Minute)
	fresh := newSession(false)
	require.NoError(t, s.Set(ctx, fresh))
	assert.Equal(t, 1, s.Len())
	_, err := s.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	sess := newSession(false)
	require.NoError(t, s.Set(ctx, sess))

	got, _ := s.Get(ctx, sess.ID)
	got.Role = model.RoleUser

	again, _ := s.Get(ctx, sess.ID)
	assert.Equal(t, model.RoleAdmin, again.Role)
}

func TestRedisStore_DisabledCacheRejectsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewRedisStore((*cache.Client)(nil), "session:short:", time.Hour)

	sess := newSession(false)
	assert.ErrorIs(t, s.Set(ctx, sess), cache.ErrDisabled)
	_, err := s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Clear(ctx, sess.ID), cache.ErrDisabled)
}

func TestManager_PersistFailsWhenRedisUnreachable(t *testing.T) {
	// nothing listens on port 1
	c := cache.New("127.0.0.1:1", "", 0)
	defer c.Close()
	m := NewManager(
		NewRedisStore(c, "session:short:", time.Hour),
		NewRedisStore(c, "session:long:", time.Hour),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sess := newSession(false)
	assert.Error(t, m.Persist(ctx, sess))
	_, err := m.Lookup(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	sess := newSession(false)
	ctx := NewContext(context.Background(), sess)
	assert.Same(t, sess, FromContext(ctx))
}

func TestDecide(t *testing.T) {
	admin := &Session{LoggedIn: true, Role: model.RoleAdmin}
	manager := &Session{LoggedIn: true, Role: model.RoleManager}
	loggedOut := &Session{Role: model.RoleUser}

	tests := []struct {
		name    string
		sess    *Session
		loading bool
		policy  Policy
		want    Decision
	}{
		{"loading wins", nil, true, RequireAdmin, Decision{Outcome: RenderLoading}},
		{"admin sees admin view", admin, false, RequireAdmin, Decision{Outcome: RenderProtected}},
		{"no session leaves admin view", nil, false, RequireAdmin, Decision{Outcome: Redirect, Target: HomeRoute}},
		{"manager leaves admin view", manager, false, RequireAdmin, Decision{Outcome: Redirect, Target: HomeRoute}},
		{"logged in sees dashboard", manager, false, RequireLogin, Decision{Outcome: RenderProtected}},
		{"no session goes to login", nil, false, RequireLogin, Decision{Outcome: Redirect, Target: LoginRoute}},
		{"not logged in goes to login", loggedOut, false, RequireLogin, Decision{Outcome: Redirect, Target: LoginRoute}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sess, tt.loading, tt.policy))
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

// Package session holds the dashboard's belief about who is logged in: the
// backend token, the role and where it is stored.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mapup/internal/model"
)

// ErrNotFound is returned by a Store when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Session is the client-side view of an authenticated identity. It is not
// verified against the backend.
type Session struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	Role      model.Role `json:"role"`
	Username  string     `json:"username"`
	LoggedIn  bool       `json:"loggedIn"`
	Remember  bool       `json:"remember"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == model.RoleAdmin
}

type ctxKey struct{}

// NewContext returns ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session resolved for the current request, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

package service

import (
	"context"
	"fmt"
	"time"

	"mapup/internal/auth"
	"mapup/internal/backend"
	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/model"
	"mapup/internal/session"
)

// LoginFailedMessage is shown when the backend gives no reason for a failed login.
const LoginFailedMessage = "Login failed"

// AuthService handles login and logout.
type AuthService interface {
	Login(ctx context.Context, f form.LoginForm) (*session.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	client   backend.Client
	sessions *session.Manager
	log      logging.Logger
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(client backend.Client, sessions *session.Manager, log logging.Logger) AuthService {
	return &authService{
		client:   client,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Login posts the credentials and stores the returned token in long-lived
// storage when KeepLoggedIn is set, short-lived storage otherwise.
func (s *authService) Login(ctx context.Context, f form.LoginForm) (*session.Session, error) {
	res, err := s.client.Login(ctx, f.Username, f.Password)
	if err != nil {
		s.log.Warn(ctx, "login rejected", "username", f.Username, "error", err)
		return nil, err
	}

	role := res.Role
	if !role.Valid() {
		role = auth.RoleFromBackendToken(res.Token)
	}
	if !role.Valid() {
		role = model.RoleUser
	}
	username := res.Username
	if username == "" {
		username = f.Username
	}

	sess := &session.Session{
		ID:        session.NewID(),
		Token:     res.Token,
		Role:      role,
		Username:  username,
		LoggedIn:  true,
		Remember:  f.KeepLoggedIn,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Persist(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info(ctx, "user logged in", "username", username, "role", role, "remember", f.KeepLoggedIn)
	return sess, nil
}

// Logout forgets the session in both stores.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Clear(ctx, sessionID)
}

// LoginMessage returns the text shown under the login form for err.
func LoginMessage(err error) string {
	if msg := backend.ServerMessage(err); msg != "" {
		return msg
	}
	return LoginFailedMessage
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mapup/internal/auth"
	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/service"
	"mapup/internal/session"
	"mapup/internal/view"
)

// SessionCookie carries the signed session id.
const SessionCookie = "mapup_session"

// CookieConfig controls how the session cookie is issued.
type CookieConfig struct {
	Secure      bool
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	authService service.AuthService
	jwtService  *auth.JWTService
	cookies     CookieConfig
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, jwtService *auth.JWTService, cookies CookieConfig, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, jwtService: jwtService, cookies: cookies, log: log}
}

// LoginPage renders the login form. Signed-in users go straight to the dashboard.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if sess := currentSession(c); sess != nil && sess.LoggedIn {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	page := newPage(c, "Login")
	page.Session = nil
	page.Body = view.Login{}
	return c.Render(http.StatusOK, view.PageLogin, page)
}

// Login posts the credentials to the backend and issues the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var f form.LoginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	sess, err := h.authService.Login(c.Request().Context(), f)
	if err != nil {
		page := newPage(c, "Login")
		page.Session = nil
		page.Body = view.Login{
			Username:     f.Username,
			KeepLoggedIn: f.KeepLoggedIn,
			Error:        service.LoginMessage(err),
		}
		return c.Render(http.StatusUnauthorized, view.PageLogin, page)
	}

	if err := h.setCookie(c, sess); err != nil {
		h.log.Error(c.Request().Context(), "issue session cookie", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start session")
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout forgets the session and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := currentSession(c); sess != nil {
		if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
			h.log.Warn(c.Request().Context(), "clear session", "error", err)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return c.Redirect(http.StatusSeeOther, session.LoginRoute)
}

// setCookie signs the session id. Remembered sessions get a persistent
// cookie, the rest last until the browser closes.
func (h *AuthHandler) setCookie(c echo.Context, sess *session.Session) error {
	ttl := h.cookies.SessionTTL
	if sess.Remember {
		ttl = h.cookies.RememberTTL
	}
	token, err := h.jwtService.GenerateSessionToken(sess.ID, sess.Role, ttl)
	if err != nil {
		return err
	}
	ck := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if sess.Remember {
		ck.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(ck)
	return nil
}

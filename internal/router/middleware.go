package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mapup/internal/auth"
	"mapup/internal/backend"
	apperrors "mapup/internal/errors"
	"mapup/internal/logging"
	"mapup/internal/session"
	"mapup/internal/view"
)

const (
	claimsKey  = "session_claims"
	loadingKey = "session_loading"
)

// sessionLookupTimeout bounds how long a request waits for the session store
// before the loading page is shown instead.
const sessionLookupTimeout = 2 * time.Second

// loadSession resolves the session named by the validated cookie claims and
// puts it on the request context together with its backend token. A missing
// or failed lookup leaves the request anonymous.
func loadSession(sessions *session.Manager, log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok {
				return next(c)
			}

			req := c.Request()
			lookupCtx, cancel := context.WithTimeout(req.Context(), sessionLookupTimeout)
			sess, err := sessions.Lookup(lookupCtx, claims.SessionID)
			timedOut := errors.Is(lookupCtx.Err(), context.DeadlineExceeded)
			cancel()

			switch {
			case err == nil:
				ctx := session.NewContext(req.Context(), sess)
				ctx = backend.WithToken(ctx, sess.Token)
				c.SetRequest(req.WithContext(ctx))
			case timedOut:
				c.Set(loadingKey, true)
			case !errors.Is(err, session.ErrNotFound):
				log.Warn(req.Context(), "session lookup", "error", err)
			}
			return next(c)
		}
	}
}

// gate applies the session policy. Pages are redirected with 303 See Other,
// API requests get JSON errors.
func gate(policy session.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := session.FromContext(c.Request().Context())
			loading, _ := c.Get(loadingKey).(bool)

			d := session.Decide(sess, loading, policy)
			switch d.Outcome {
			case session.RenderProtected:
				return next(c)
			case session.RenderLoading:
				if isAPI(c) {
					return writeError(c, apperrors.ErrSessionLoading)
				}
				return c.Render(http.StatusOK, view.PageLoading, view.NewPage("Loading", c.Request().URL.Path, nil, nil))
			}

			if isAPI(c) {
				if sess == nil || !sess.LoggedIn {
					return writeError(c, apperrors.ErrUnauthenticated)
				}
				return writeError(c, apperrors.ErrForbidden)
			}
			return c.Redirect(http.StatusSeeOther, d.Target)
		}
	}
}

func isAPI(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func writeError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mapup/internal/notice"
	"mapup/internal/session"
	"mapup/internal/view"
)

// currentSession returns the session resolved by the gate middleware.
func currentSession(c echo.Context) *session.Session {
	return session.FromContext(c.Request().Context())
}

// newPage builds the page shell and drains any flashed notices into it.
func newPage(c echo.Context, title string) *view.Page {
	page := view.NewPage(title, c.Request().URL.Path, currentSession(c), notice.NewSet(notice.Pop(c)...))
	page.Query = c.QueryParams()
	page.Dialog = c.QueryParam(view.ParamDialog)
	return page
}

func queryInt(c echo.Context, name string, fallback int) int {
	return intParam(c.QueryParams(), name, fallback)
}

func intParam(q url.Values, name string, fallback int) int {
	n, err := strconv.Atoi(q.Get(name))
	if err != nil {
		return fallback
	}
	return n
}

// origin returns the path and query of the same-site page the request came
// from, without ?dialog=. fallback is used when there is none.
func origin(c echo.Context, fallback string) (string, url.Values) {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") ||
		(ref.Host != "" && ref.Host != c.Request().Host) {
		ref, _ = url.Parse(fallback)
	}
	q := ref.Query()
	q.Del(view.ParamDialog)
	return ref.Path, q
}

// back returns the same-site page the request came from, or fallback.
func back(c echo.Context, fallback string) string {
	path, q := origin(c, fallback)
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// redirectWith flashes ns and sends the browser to target.
func redirectWith(c echo.Context, target string, ns ...notice.Notice) error {
	notice.Flash(c, ns...)
	return c.Redirect(http.StatusSeeOther, target)
}

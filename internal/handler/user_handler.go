package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/notice"
	"mapup/internal/service"
	"mapup/internal/view"
)

// Notices raised by the user endpoints.
const (
	MsgUserCreated        = "User created successfully!"
	MsgUserCreationFailed = "User creation failed. Please try again."
	MsgUserDeleteFailed   = "Failed to delete user. Please try again."
)

// UserHandler handles the user creation dialog and the user table actions.
type UserHandler struct {
	users     service.UserService
	dashboard *DashboardHandler
	log       logging.Logger
}

// NewUserHandler creates a new user handler. Rejected forms are re-rendered
// on the dashboard.
func NewUserHandler(users service.UserService, dashboard *DashboardHandler, log logging.Logger) *UserHandler {
	return &UserHandler{users: users, dashboard: dashboard, log: log}
}

// Create submits the user creation dialog.
func (h *UserHandler) Create(c echo.Context) error {
	var f form.CreateUserForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	fieldErrs, err := h.users.Create(c.Request().Context(), f)
	switch {
	case service.IsInvalidUser(err):
		page := newPage(c, "Dashboard")
		page.Locate(origin(c, "/"))
		page.Dialog = view.DialogCreateUser
		page.CreateUser = f
		page.CreateUser.Password = ""
		page.Notices.AddFields(fieldErrs)
		return h.dashboard.render(c, page, currentSession(c).Role, http.StatusUnprocessableEntity)
	case err != nil:
		return redirectWith(c, back(c, "/"), notice.Blocking(MsgUserCreationFailed))
	}
	return redirectWith(c, back(c, "/"), notice.Toast(MsgUserCreated))
}

// Delete removes a user and sends the browser back to the page it came from,
// which reloads the list.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return redirectWith(c, back(c, "/admin"), notice.Blocking(MsgUserDeleteFailed))
	}
	return c.Redirect(http.StatusSeeOther, back(c, "/admin"))
}

// Edit is a placeholder until the backend exposes user updates.
func (h *UserHandler) Edit(c echo.Context) error {
	h.users.Edit(c.Request().Context(), c.Param("id"))
	return c.Redirect(http.StatusSeeOther, back(c, "/admin"))
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mapup/internal/chart"
	apperrors "mapup/internal/errors"
	"mapup/internal/logging"
	"mapup/internal/model"
	"mapup/internal/notice"
	"mapup/internal/paging"
	"mapup/internal/service"
	"mapup/internal/summary"
	"mapup/internal/view"
)

// Messages shown when a dashboard section cannot load.
const (
	msgStocksUnavailable = "Failed to load stock data."
	msgUsersUnavailable  = "Failed to load users."
)

// DashboardHandler renders the signed-in pages.
type DashboardHandler struct {
	stocks  service.StockService
	users   service.UserService
	summary summary.Provider
	log     logging.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(stocks service.StockService, users service.UserService, summary summary.Provider, log logging.Logger) *DashboardHandler {
	return &DashboardHandler{stocks: stocks, users: users, summary: summary, log: log}
}

// Home renders the dashboard for the signed-in role.
func (h *DashboardHandler) Home(c echo.Context) error {
	sess := currentSession(c)
	return h.render(c, newPage(c, "Dashboard"), sess.Role, http.StatusOK)
}

// Admin renders the admin dashboard.
func (h *DashboardHandler) Admin(c echo.Context) error {
	return h.render(c, newPage(c, "Admin Dashboard"), model.RoleAdmin, http.StatusOK)
}

// Analytics renders the chart for one page of the stock table.
func (h *DashboardHandler) Analytics(c echo.Context) error {
	page := newPage(c, "Analytics")
	table, visible := h.stockTable(c, page)
	page.Body = view.Analytics{
		Stocks: view.NewStockTable(table, page.Path, page.Query),
		Chart:  chart.Build(visible),
	}
	return c.Render(http.StatusOK, view.PageAnalytics, page)
}

// Account renders the profile card of the signed-in user.
func (h *DashboardHandler) Account(c echo.Context) error {
	ctx := c.Request().Context()
	sess := currentSession(c)
	page := newPage(c, "Account")

	user, err := h.users.Find(ctx, sess.Username)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		h.log.Warn(ctx, "load profile", "username", sess.Username, "error", err)
	}
	page.Body = view.Account{User: user}
	return c.Render(http.StatusOK, view.PageAccount, page)
}

// Placeholder renders the "not available" page for a declared sidebar entry.
func (h *DashboardHandler) Placeholder(label string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := newPage(c, label)
		page.Body = view.Placeholder{Label: label}
		return c.Render(http.StatusOK, view.PagePlaceholder, page)
	}
}

// render builds the dashboard for role from page.Path and page.Query.
func (h *DashboardHandler) render(c echo.Context, page *view.Page, role model.Role, status int) error {
	ctx := c.Request().Context()

	stats, err := h.summary.Stats(ctx)
	if err != nil {
		h.log.Warn(ctx, "load summary", "error", err)
	}
	table, visible := h.stockTable(c, page)
	body := view.Dashboard{
		Role:    role,
		Summary: summary.NewPanel(stats),
		Stocks:  view.NewStockTable(table, page.Path, page.Query),
	}

	if role == model.RoleAdmin || role == model.RoleManager {
		cfg := chart.Build(visible)
		body.Chart = &cfg
	}
	if role == model.RoleAdmin {
		users := h.loadUsers(ctx, page)
		size := service.NormalizeUserPageSize(intParam(page.Query, view.ParamUserPageSize, service.DefaultUserPageSize))
		body.Users = view.NewUserTable(service.NewUserTable(users, size, intParam(page.Query, view.ParamUserPage, 1)), page.Path, page.Query)
	}

	page.Body = body
	return c.Render(status, view.PageDashboard, page)
}

// stockTable loads the dataset and positions the table on ?page=. The
// visible slice is reported back for the chart.
func (h *DashboardHandler) stockTable(c echo.Context, page *view.Page) (*paging.Table[model.StockRecord], []model.StockRecord) {
	records, err := h.stocks.Records(c.Request().Context())
	if err != nil {
		page.Notices.Add(notice.Blocking(msgStocksUnavailable))
		records = nil
	}

	var visible []model.StockRecord
	table := paging.New(records, paging.DefaultRowsPerPage, func(rows []model.StockRecord) {
		visible = rows
	})
	if !table.SetPage(intParam(page.Query, view.ParamStockPage, 1)) {
		table.Report()
	}
	return table, visible
}

func (h *DashboardHandler) loadUsers(ctx context.Context, page *view.Page) *service.UserList {
	list, err := h.users.List(ctx)
	if err != nil {
		page.Notices.Add(notice.Blocking(msgUsersUnavailable))
		return service.NewUserList(nil)
	}
	return list
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapup/internal/chart"
	"mapup/internal/errors"
	"mapup/internal/logging"
	"mapup/internal/model"
	"mapup/internal/paging"
	"mapup/internal/service"
)

// APIHandler serves the JSON view endpoints used by scripts and tests.
type APIHandler struct {
	stocks service.StockService
	users  service.UserService
	log    logging.Logger
}

// NewAPIHandler creates a new view API handler.
func NewAPIHandler(stocks service.StockService, users service.UserService, log logging.Logger) *APIHandler {
	return &APIHandler{stocks: stocks, users: users, log: log}
}

// StockPageResponse is one page of the stock table with its chart.
type StockPageResponse struct {
	Page        int                 `json:"page"`
	TotalPages  int                 `json:"totalPages"`
	RowsPerPage int                 `json:"rowsPerPage"`
	Total       int                 `json:"total"`
	Buttons     []int               `json:"buttons"`
	Rows        []model.StockRecord `json:"rows"`
	Chart       chart.Config        `json:"chart"`
}

// UserPageResponse is one page of the user management table.
type UserPageResponse struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	PageSize   int          `json:"pageSize"`
	PageSizes  []int        `json:"pageSizes"`
	Total      int          `json:"total"`
	Buttons    []int        `json:"buttons"`
	Users      []model.User `json:"users"`
}

// RefreshResponse reports the size of the reloaded dataset.
type RefreshResponse struct {
	Records int `json:"records"`
}

// Stocks godoc
// @Summary Get a page of stock data
// @Tags view
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Rows per page"
// @Success 200 {object} StockPageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /stocks [get]
func (h *APIHandler) Stocks(c echo.Context) error {
	records, err := h.stocks.Records(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	var visible []model.StockRecord
	t := paging.New(records, queryInt(c, "size", paging.DefaultRowsPerPage), func(rows []model.StockRecord) {
		visible = rows
	})
	if !t.SetPage(queryInt(c, "page", 1)) {
		t.Report()
	}

	return c.JSON(http.StatusOK, StockPageResponse{
		Page:        t.CurrentPage(),
		TotalPages:  t.TotalPages(),
		RowsPerPage: t.RowsPerPage(),
		Total:       t.Len(),
		Buttons:     t.Buttons(),
		Rows:        visible,
		Chart:       chart.Build(visible),
	})
}

// Users godoc
// @Summary Get a page of the user list
// @Tags view
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Rows per page (5, 10 or 15)"
// @Success 200 {object} UserPageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /users [get]
func (h *APIHandler) Users(c echo.Context) error {
	list, err := h.users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	t := service.NewUserTable(list, queryInt(c, "size", service.DefaultUserPageSize), queryInt(c, "page", 1))
	return c.JSON(http.StatusOK, UserPageResponse{
		Page:       t.CurrentPage(),
		TotalPages: t.TotalPages(),
		PageSize:   t.RowsPerPage(),
		PageSizes:  t.PageSizes(),
		Total:      t.Len(),
		Buttons:    t.Buttons(),
		Users:      t.Visible(),
	})
}

// Refresh godoc
// @Summary Reload the stock data from the backend
// @Tags view
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /refresh [post]
func (h *APIHandler) Refresh(c echo.Context) error {
	records, err := h.stocks.Refresh(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, RefreshResponse{Records: len(records)})
}

func writeError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

package view

import (
	"net/url"
	"strconv"

	"mapup/internal/chart"
	"mapup/internal/form"
	"mapup/internal/model"
	"mapup/internal/nav"
	"mapup/internal/notice"
	"mapup/internal/paging"
	"mapup/internal/service"
	"mapup/internal/session"
	"mapup/internal/summary"
)

// Query parameters that drive the tables.
const (
	ParamStockPage    = "page"
	ParamUserPage     = "upage"
	ParamUserPageSize = "usize"
	ParamDialog       = "dialog"
)

// Overlay names accepted in ?dialog=.
const (
	DialogCreateUser = "create-user"
	DialogUpload     = "upload"
)

// Page is the data every template receives.
type Page struct {
	Title   string
	Path    string
	Query   url.Values
	Nav     []nav.Item
	Session *session.Session
	Notices *notice.Set
	Dialog  string

	// CreateUser is echoed back into the creation dialog after a rejected submit.
	CreateUser form.CreateUserForm
	Roles      []model.Role

	Body any
}

// NewPage builds the shell shared by all signed-in pages.
func NewPage(title, path string, sess *session.Session, notices *notice.Set) *Page {
	if notices == nil {
		notices = notice.NewSet()
	}
	return &Page{
		Title:   title,
		Path:    path,
		Nav:     nav.Items(path),
		Session: sess,
		Notices: notices,
		Roles:   model.Roles,
	}
}

// Locate points the page at path and q. Form posts that re-render the page
// they were submitted from use it so links resolve against that page.
func (p *Page) Locate(path string, q url.Values) {
	p.Path = path
	p.Query = q
	p.Nav = nav.Items(path)
}

// Login is the body of the login page.
type Login struct {
	Username     string
	KeepLoggedIn bool
	Error        string
}

// Dashboard is the body of the role-specific dashboards.
type Dashboard struct {
	Role    model.Role
	Summary summary.Panel
	Stocks  StockTable
	Chart   *chart.Config
	Users   *UserTable
}

// ShowChart reports whether the role sees the chart.
func (d Dashboard) ShowChart() bool {
	return d.Chart != nil
}

// Analytics is the body of the analytics page.
type Analytics struct {
	Stocks StockTable
	Chart  chart.Config
}

// Account is the body of the profile card.
type Account struct {
	User *model.User
}

// Placeholder is the body shown for declared but unbuilt destinations.
type Placeholder struct {
	Label string
}

// PageLink is one numbered pagination button.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// Pager carries the navigation controls under a table.
type Pager struct {
	Current int
	Total   int
	Links   []PageLink
	PrevURL string
	NextURL string
}

// StockRow is a StockRecord formatted for display.
type StockRow struct {
	Date         string
	Open         string
	High         string
	Low          string
	Close        string
	Volume       string
	OpenInterest string
}

// StockColumns is the number of columns in the stock table.
const StockColumns = 7

// StockTable is the visible page of the stock table.
type StockTable struct {
	Rows    []StockRow
	Empty   bool
	Columns int
	Pager   Pager
}

// NewStockTable formats the visible page of t. Page links point at path and
// keep the other parameters of q.
func NewStockTable(t *paging.Table[model.StockRecord], path string, q url.Values) StockTable {
	visible := t.Visible()
	rows := make([]StockRow, 0, len(visible))
	for _, r := range visible {
		rows = append(rows, StockRow{
			Date:         r.DisplayDate(),
			Open:         r.Open.String(),
			High:         r.High.String(),
			Low:          r.Low.String(),
			Close:        r.Close.String(),
			Volume:       r.Volume.String(),
			OpenInterest: r.OpenInterest.String(),
		})
	}
	return StockTable{
		Rows:    rows,
		Empty:   t.Empty(),
		Columns: StockColumns,
		Pager:   newPager(t.CurrentPage(), t.TotalPages(), t.Buttons(), t.HasPrev(), t.HasNext(), path, q, ParamStockPage),
	}
}

// UserRow is a User formatted for display.
type UserRow struct {
	ID          string
	FullName    string
	Username    string
	Email       string
	Role        model.Role
	CreatedBy   string
	CreatedDate string
	LastLogin   string
}

// UserTable is the visible page of the user management table.
type UserTable struct {
	Rows      []UserRow
	Empty     bool
	PageSize  int
	PageSizes []int
	Pager     Pager

	// Action and Keep drive the page-size form.
	Action string
	Keep   url.Values
}

// NewUserTable formats the visible page of t. Links point at path.
func NewUserTable(t *service.UserTable, path string, q url.Values) *UserTable {
	visible := t.Visible()
	rows := make([]UserRow, 0, len(visible))
	for _, u := range visible {
		rows = append(rows, UserRow{
			ID:          u.ID,
			FullName:    u.FullName,
			Username:    u.Username,
			Email:       u.Email,
			Role:        u.Role,
			CreatedBy:   u.CreatedBy,
			CreatedDate: u.CreatedDay(),
			LastLogin:   u.LastLoginAt(),
		})
	}
	return &UserTable{
		Rows:      rows,
		Empty:     t.Empty(),
		PageSize:  t.RowsPerPage(),
		PageSizes: t.PageSizes(),
		Pager:     newPager(t.CurrentPage(), t.TotalPages(), t.Buttons(), t.HasPrev(), t.HasNext(), path, q, ParamUserPage),
		Action:    path,
		Keep:      without(q, ParamUserPage, ParamUserPageSize, ParamDialog),
	}
}

func newPager(current, total int, buttons []int, hasPrev, hasNext bool, path string, q url.Values, param string) Pager {
	p := Pager{Current: current, Total: total}
	for _, n := range buttons {
		p.Links = append(p.Links, PageLink{Number: n, URL: PageURL(path, q, param, n), Current: n == current})
	}
	if hasPrev {
		p.PrevURL = PageURL(path, q, param, current-1)
	}
	if hasNext {
		p.NextURL = PageURL(path, q, param, current+1)
	}
	return p
}

// PageURL returns path with the query q, param set to n and any dialog closed.
func PageURL(path string, q url.Values, param string, n int) string {
	next := without(q, ParamDialog)
	next.Set(param, strconv.Itoa(n))
	return path + "?" + next.Encode()
}

func without(q url.Values, keys ...string) url.Values {
	next := url.Values{}
	for k, v := range q {
		next[k] = append([]string(nil), v...)
	}
	for _, k := range keys {
		next.Del(k)
	}
	return next
}

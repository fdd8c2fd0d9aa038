// Package paging implements the client-side pagination used by the stock table and
// the user management table.
package paging

// DefaultRowsPerPage is used when a table is built with a non-positive page size.
const DefaultRowsPerPage = 10

// ButtonWindow is the maximum number of page buttons shown at once.
const ButtonWindow = 5

// Table holds a 1-indexed page position over data supplied by its owner and
// reports the visible slice back through OnPageChange.
type Table[T any] struct {
	data         []T
	rowsPerPage  int
	currentPage  int
	onPageChange func([]T)
}

// New builds a table positioned on page 1. onPageChange may be nil.
func New[T any](data []T, rowsPerPage int, onPageChange func([]T)) *Table[T] {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	return &Table[T]{
		data:         data,
		rowsPerPage:  rowsPerPage,
		currentPage:  1,
		onPageChange: onPageChange,
	}
}

// TotalPages returns ceil(len(data) / rowsPerPage).
func TotalPages(length, rowsPerPage int) int {
	if rowsPerPage <= 0 || length <= 0 {
		return 0
	}
	return (length + rowsPerPage - 1) / rowsPerPage
}

func (t *Table[T]) TotalPages() int  { return TotalPages(len(t.data), t.rowsPerPage) }
func (t *Table[T]) CurrentPage() int { return t.currentPage }
func (t *Table[T]) RowsPerPage() int { return t.rowsPerPage }
func (t *Table[T]) Len() int         { return len(t.data) }
func (t *Table[T]) Empty() bool      { return len(t.data) == 0 }

// SetPage moves to page n and reports the new slice. It is a no-op returning
// false when n is outside [1, TotalPages()].
func (t *Table[T]) SetPage(n int) bool {
	if n < 1 || n > t.TotalPages() {
		return false
	}
	t.currentPage = n
	t.Report()
	return true
}

// Report invokes the page-change callback with the current slice.
func (t *Table[T]) Report() {
	if t.onPageChange != nil {
		t.onPageChange(t.Visible())
	}
}

// Visible returns data[(page-1)*rowsPerPage : page*rowsPerPage], truncated to
// the data length. The result shares the table's backing array.
func (t *Table[T]) Visible() []T {
	start := (t.currentPage - 1) * t.rowsPerPage
	if start >= len(t.data) {
		return []T{}
	}
	end := start + t.rowsPerPage
	if end > len(t.data) {
		end = len(t.data)
	}
	return t.data[start:end]
}

// Offset is the zero-based index of the first visible row.
func (t *Table[T]) Offset() int {
	return (t.currentPage - 1) * t.rowsPerPage
}

// SetData replaces the data, keeping the current page when it is still in
// range and clamping it otherwise.
func (t *Table[T]) SetData(data []T) {
	t.data = data
	if total := t.TotalPages(); t.currentPage > total {
		t.currentPage = max(1, total)
	}
}

// HasPrev reports whether the Previous button is enabled.
func (t *Table[T]) HasPrev() bool { return t.currentPage > 1 }

// HasNext reports whether the Next button is enabled.
func (t *Table[T]) HasNext() bool { return t.currentPage < t.TotalPages() }

// Buttons returns the page numbers to render, at most ButtonWindow of them.
func (t *Table[T]) Buttons() []int {
	return Window(t.currentPage, t.TotalPages(), ButtonWindow)
}

// Window returns up to w consecutive page numbers centred on current and
// clamped to [1, total].
func Window(current, total, w int) []int {
	if total <= 0 || w <= 0 {
		return []int{}
	}
	upper := 1
	if total >= w {
		upper = total - w + 1
	}
	start := min(max(current-w/2, 1), upper)
	end := min(total, start+w-1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Package table implements the sort, filter and paginate helpers behind the
// monitored domains and SSL certificates tables.
package table

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"drr/internal/domain"
)

// Field names a sortable column
type Field string

const (
	FieldName            Field = "name"
	FieldType            Field = "type"
	FieldIssuer          Field = "issuer"
	FieldRenewDate       Field = "renew_date"
	FieldDaysUntilExpiry Field = "days_until_expiry"
	FieldCreatedAt       Field = "created_at"
	FieldNotBefore       Field = "not_before"
)

// Fields lists the sortable columns in display order
var Fields = []Field{FieldName, FieldType, FieldIssuer, FieldRenewDate, FieldDaysUntilExpiry, FieldCreatedAt, FieldNotBefore}

// ParseField returns the field with the given name, defaulting to renew_date
func ParseField(s string) Field {
	for _, f := range Fields {
		if string(f) == s {
			return f
		}
	}
	return FieldRenewDate
}

// Direction is a sort direction
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the current sort column and direction
type SortState struct {
	Field     Field
	Direction Direction
}

// Toggle flips the direction when the same field is chosen again and resets
// to ascending for a new field.
func (s SortState) Toggle(f Field) SortState {
	if s.Field == f {
		if s.Direction == Ascending {
			return SortState{Field: f, Direction: Descending}
		}
		return SortState{Field: f, Direction: Ascending}
	}
	return SortState{Field: f, Direction: Ascending}
}

// MinFilterLength is the shortest query that filters anything
const MinFilterLength = 2

// FilterRows keeps rows whose name contains query, case-insensitively.
// Queries shorter than MinFilterLength return rows unchanged.
func FilterRows(rows []domain.Record, query string) []domain.Record {
	if len([]rune(query)) < MinFilterLength {
		return rows
	}
	q := strings.ToLower(query)
	out := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// SortRows returns a sorted copy of rows. Date fields compare as timestamps,
// days_until_expiry compares the computed day count relative to now, every
// other field compares case-insensitively as text. Ties fall back to the
// record ID so the order never depends on the input order.
func SortRows(rows []domain.Record, state SortState, now time.Time) []domain.Record {
	out := slices.Clone(rows)
	key := compareBy(state.Field, now)
	slices.SortStableFunc(out, func(a, b domain.Record) int {
		c := key(a, b)
		if state.Direction == Descending {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})
	return out
}

func compareBy(f Field, now time.Time) func(a, b domain.Record) int {
	switch f {
	case FieldRenewDate:
		return func(a, b domain.Record) int { return a.RenewDate.Compare(b.RenewDate.Time) }
	case FieldCreatedAt:
		return func(a, b domain.Record) int { return a.CreatedAt.Compare(b.CreatedAt.Time) }
	case FieldNotBefore:
		return func(a, b domain.Record) int { return compareOptionalTime(a.NotBefore, b.NotBefore) }
	case FieldDaysUntilExpiry:
		return func(a, b domain.Record) int {
			return cmp.Compare(DaysUntilExpiry(a.RenewDate.Time, now), DaysUntilExpiry(b.RenewDate.Time, now))
		}
	default:
		return func(a, b domain.Record) int {
			return strings.Compare(strings.ToLower(textOf(a, f)), strings.ToLower(textOf(b, f)))
		}
	}
}

// missing timestamps sort before present ones
func compareOptionalTime(a, b *domain.Timestamp) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(b.Time)
	}
}

func textOf(r domain.Record, f Field) string {
	switch f {
	case FieldType:
		return string(r.Type)
	case FieldIssuer:
		return r.Issuer
	default:
		return r.Name
	}
}

// PageSize is a number of rows per page; PageSizeAll shows every row on one page
type PageSize int

const PageSizeAll PageSize = 0

// PageSizes are the choices offered by the page-size selector
var PageSizes = []PageSize{10, 25, 50, PageSizeAll}

// NextPageSize cycles through PageSizes
func NextPageSize(cur PageSize) PageSize {
	for i, p := range PageSizes {
		if p == cur {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

func (p PageSize) String() string {
	if p == PageSizeAll {
		return "all"
	}
	return strconv.Itoa(int(p))
}

// PageInfo describes the page returned by Paginate
type PageInfo struct {
	Page       int // zero-based, after clamping
	TotalPages int
	TotalRows  int
	First      int // index of the first row on the page
}

// Paginate returns the rows on the given zero-based page. Pages past the end
// clamp to the last page; PageSizeAll yields one page with every row.
func Paginate(rows []domain.Record, size PageSize, page int) ([]domain.Record, PageInfo) {
	info := PageInfo{TotalRows: len(rows), TotalPages: 1}
	if size <= PageSizeAll || len(rows) == 0 {
		return rows, info
	}

	n := int(size)
	info.TotalPages = (len(rows) + n - 1) / n
	if page < 0 {
		page = 0
	}
	if page >= info.TotalPages {
		page = info.TotalPages - 1
	}
	info.Page = page
	info.First = page * n

	end := info.First + n
	if end > len(rows) {
		end = len(rows)
	}
	return rows[info.First:end], info
}

// View bundles the table state of the domains screen
type View struct {
	Sort     SortState
	Query    string
	PageSize PageSize
	Page     int
	Type     domain.RecordType // empty shows both domains and SSL
}

// Apply filters, sorts and paginates rows for display
func Apply(rows []domain.Record, v View, now time.Time) ([]domain.Record, PageInfo) {
	if v.Type != "" {
		typed := make([]domain.Record, 0, len(rows))
		for _, r := range rows {
			if r.Type == v.Type {
				typed = append(typed, r)
			}
		}
		rows = typed
	}
	filtered := FilterRows(rows, v.Query)
	sorted := SortRows(filtered, v.Sort, now)
	return Paginate(sorted, v.PageSize, v.Page)
}

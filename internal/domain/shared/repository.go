package shared

// Pagination bounds shared by every list endpoint
const (
	DefaultPageSize = 5
	MaxPageSize     = 10
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// NewPageFilter builds a filter from 1-indexed page and size values.
// Zero values fall back to the defaults; anything else out of range is rejected.
func NewPageFilter(page, size int) (Filter, error) {
	f := DefaultFilter()
	if page < 0 {
		return f, ErrInvalidInput.Withf("page must be greater than zero")
	}
	if page > 0 {
		f.Page = page
	}
	if size != 0 {
		if size < 1 || size > MaxPageSize {
			return f, ErrInvalidInput.Withf("size must be between 1 and %d", MaxPageSize)
		}
		f.PageSize = size
	}
	return f, nil
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

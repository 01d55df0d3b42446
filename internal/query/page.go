package query

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Page is one window of a filtered view.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Paginate returns the 1-based page of items. Out-of-range pages are clamped
// to the last page; an empty view yields page 1 with no items.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	total := len(items)
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	window := make([]T, 0, end-start)
	window = append(window, items[start:end]...)
	return Page[T]{Items: window, Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// Pager keeps the browsing position of a view. Changing the filter or the
// page size always returns to page 1.
type Pager[F comparable] struct {
	filter F
	page   int
	limit  int
}

func NewPager[F comparable](filter F, limit int) *Pager[F] {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Pager[F]{filter: filter, page: 1, limit: limit}
}

func (p *Pager[F]) Filter() F  { return p.filter }
func (p *Pager[F]) Page() int  { return p.page }
func (p *Pager[F]) Limit() int { return p.limit }

func (p *Pager[F]) SetFilter(f F) {
	if f != p.filter {
		p.filter = f
		p.page = 1
	}
}

func (p *Pager[F]) SetLimit(limit int) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit != p.limit {
		p.limit = limit
		p.page = 1
	}
}

func (p *Pager[F]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.page = page
}

package dto

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is a clamped page request. Build it with NewPage.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps page to at least 1 and limit to [1, maxLimit]. A non-positive limit
// falls back to defaultLimit.
func NewPage(page, limit, defaultLimit, maxLimit int) Page {
	if maxLimit <= 0 {
		maxLimit = MaxPageLimit
	}
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(DefaultPageLimit, maxLimit)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Number: page, Limit: limit}
}

func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// PageResult is a single page of a feed together with the information needed to walk the rest.
type PageResult[T any] struct {
	Items       []T   `json:"items"`
	TotalItems  int64 `json:"totalItems"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int64 `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewPageResult[T any](items []T, total int64, page Page) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	var totalPages int64
	if page.Limit > 0 {
		totalPages = (total + int64(page.Limit) - 1) / int64(page.Limit)
	}
	return &PageResult[T]{
		Items:       items,
		TotalItems:  total,
		Page:        page.Number,
		Limit:       page.Limit,
		TotalPages:  totalPages,
		HasNextPage: int64(page.Number) < totalPages,
		HasPrevPage: page.Number > 1,
	}
}

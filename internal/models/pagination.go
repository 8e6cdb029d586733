package models

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// MaxPage keeps (page-1)*limit inside int.
const MaxPage = math.MaxInt / MaxPageLimit

type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPage clamps raw query values: page below 1 becomes 1 and page above
// MaxPage becomes MaxPage. A missing or non-positive limit becomes
// DefaultPageLimit and anything above MaxPageLimit is capped.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewMeta(p Page, total int) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

// List is a page of items together with the unpaged total.
type List[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

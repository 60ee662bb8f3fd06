// Package paging normalises 1-indexed page/limit query parameters.
package paging

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit inside int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

type Params struct {
	Page  int
	Limit int
}

// New clamps page to [1, MaxPage] and limit to [1, MaxLimit], defaulting limit to DefaultLimit.
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset is the index of the first row of the page window.
func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// TotalPages is ceil(total/limit).
func (p Params) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	l := int64(p.Limit)
	return int((total + l - 1) / l)
}

// Result is the list envelope every paginated endpoint returns.
type Result[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewResult[T any](p Params, data []T, total int64) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Data: data, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages(total)}
}

package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxPage keeps Page*Size within int on every platform.
const MaxPage = math.MaxInt32 / MaxPageSize

// PageRequest selects a 0-based page of a listing.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request into a valid range.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a listing plus the totals needed to navigate it.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage assembles a Page for the normalized request req.
func NewPage[T any](content []T, total int64, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        req.Page,
		Size:          req.Size,
		First:         req.Page == 0,
		Last:          req.Page >= pages-1,
	}
}

package pagination

import (
	"net/http"
	"strconv"
)

// Default pagination values
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params represents pagination query parameters
type Params struct {
	Page     int `json:"page"`      // Current page number (1-based)
	PageSize int `json:"page_size"` // Number of items per page
}

// Meta contains pagination metadata for responses
type Meta struct {
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// ParseParams extracts pagination parameters from the request query string.
// Missing or malformed values fall back to defaults; page_size is clamped
// to MaxPageSize so a single request cannot pull the whole table.
func ParseParams(r *http.Request) Params {
	p := Params{Page: DefaultPage, PageSize: DefaultPageSize}

	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			p.Page = v
		}
	}
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			p.PageSize = v
		}
	}

	p.Normalize()
	return p
}

// Normalize clamps the parameters into their valid ranges
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the SQL OFFSET value for the current page
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// CalculateMeta creates pagination metadata based on total records
func (p *Params) CalculateMeta(totalRecords int) Meta {
	totalPages := (totalRecords + p.PageSize - 1) / p.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		CurrentPage:  p.Page,
		PerPage:      p.PageSize,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNext:      p.Page < totalPages,
		HasPrevious:  p.Page > 1,
	}
}

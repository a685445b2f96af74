// internal/app/system/paging/paging.go
package paging

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows per page.
const PageSize = 50

// MaxPageSize caps the "size" query parameter.
const MaxPageSize = 200

// MaxPage caps the "page" query parameter so Offset stays within int32.
const MaxPage = math.MaxInt32 / MaxPageSize

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Parse reads the "page" and "size" query parameters. Missing or invalid
// values fall back to page 1 and PageSize. Page is capped at MaxPage and
// size at MaxPageSize.
func Parse(r *http.Request) Page {
	p := Page{Number: 1, Size: PageSize}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n > 0 {
		p.Number = min(n, MaxPage)
	}
	if n, err := strconv.Atoi(query.Get(r, "size")); err == nil && n > 0 {
		p.Size = min(n, MaxPageSize)
	}
	return p
}

// Offset is the number of rows to skip.
func (p Page) Offset() int64 {
	return int64((p.Number - 1) * p.Size)
}

// Limit is the number of rows to fetch.
func (p Page) Limit() int64 {
	return int64(p.Size)
}

// Info describes a page of results for JSON responses.
type Info struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// Describe computes the page metadata for total matching rows.
func (p Page) Describe(total int64) Info {
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	if pages < 1 {
		pages = 1
	}
	return Info{
		Page:       p.Number,
		Size:       p.Size,
		Total:      total,
		TotalPages: pages,
		HasPrev:    p.Number > 1,
		HasNext:    p.Number < pages,
	}
}

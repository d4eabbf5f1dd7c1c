// Package pagination is the single paginator used by every paginated
// endpoint, whether the page is cut with an aggregation $skip/$limit or
// with find options. Contract: (page number, page size) in, skip offset and
// total-pages out.
package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a normalized pagination request.
type Params struct {
	Page  int
	Limit int
}

// FromQuery parses page/limit query values, falling back to page 1 and
// DefaultLimit. Values above MaxLimit are clamped.
func FromQuery(pageStr, limitStr string) Params {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// TotalPages returns the page count for a collection of the given size.
// An empty collection still has one (empty) page.
func (p Params) TotalPages(total int64) int {
	pages := int(math.Ceil(float64(total) / float64(p.Limit)))
	if pages < 1 {
		pages = 1
	}
	return pages
}

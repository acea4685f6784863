// Package pagination slices ordered result sets into bounded pages.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the number of posts shown on one page.
const DefaultPageSize = 10

// Window describes one page of an ordered sequence. Start and End are
// half-open indexes into that sequence.
type Window struct {
	Start       int  `json:"-"`
	End         int  `json:"-"`
	Number      int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNextPage"`
	HasPrevious bool `json:"hasPreviousPage"`
}

// Limit is the number of items the window covers.
func (w Window) Limit() int {
	return w.End - w.Start
}

// Paginate computes the window for the requested page of a sequence with
// total items. Out of range pages are clamped to the first or last page.
func Paginate(total, pageSize, requested int) Window {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	return Window{
		Start:       start,
		End:         end,
		Number:      number,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}

// ParsePage reads a page query parameter. Anything that is not a positive
// integer yields page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

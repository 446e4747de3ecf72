package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest handles pagination parameters from Fiber context.
// Out-of-range values clamp to sane defaults instead of erroring.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return New(page, limit)
}

// New builds a Pagination from a 1-based page and a page size.
func New(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// TotalPages returns how many pages the total spans. An empty set still
// renders as a single page so clients can show "Page 1 of 1".
func (p Pagination) TotalPages() int64 {
	if p.Total <= 0 {
		return 1
	}
	pages := p.Total / int64(p.Limit)
	if p.Total%int64(p.Limit) > 0 {
		pages++
	}
	return pages
}

// StartRow is the 1-based index of the first row on this page, 0 when the
// result set is empty.
func (p Pagination) StartRow() int64 {
	if p.Total == 0 {
		return 0
	}
	return int64(p.Offset) + 1
}

// EndRow is the 1-based index of the last row on this page.
func (p Pagination) EndRow() int64 {
	end := int64(p.Page) * int64(p.Limit)
	if end > p.Total {
		end = p.Total
	}
	return end
}

// Serial returns the 1-based display row number for the item at index on this
// page. It is a presentation value only, never stored.
func (p Pagination) Serial(index int) int {
	return p.Offset + index + 1
}

// Response creates a standardized pagination response body.
func Response(p Pagination, data interface{}) fiber.Map {
	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"current_page": p.Page,
			"per_page":     p.Limit,
			"total_items":  p.Total,
			"total_pages":  p.TotalPages(),
			"start_row":    p.StartRow(),
			"end_row":      p.EndRow(),
		},
	}
}

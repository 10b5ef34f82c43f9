package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based pagination window.
type Page struct {
	Page     int
	PageSize int
}

// ParsePage reads page/page_size query parameters, clamping page to >= 1 and
// page_size into [1, MaxPageSize].
func ParsePage(query url.Values) Page {
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Page{Page: page, PageSize: pageSize}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages is ceil(total/pageSize), and 0 (not 1) when total is 0.
func TotalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

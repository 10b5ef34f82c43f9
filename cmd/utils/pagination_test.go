package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 2, TotalPages(40, 20))
}

func TestParsePage(t *testing.T) {
	page := ParsePage(url.Values{})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)

	page = ParsePage(url.Values{"page": {"0"}, "page_size": {"500"}})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxPageSize, page.PageSize)

	page = ParsePage(url.Values{"page": {"-3"}, "page_size": {"0"}})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)

	page = ParsePage(url.Values{"page": {"3"}, "page_size": {"50"}})
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 50, page.PageSize)
	assert.Equal(t, 100, page.Offset())
}

func TestRequireOwner(t *testing.T) {
	assert.NoError(t, RequireOwner(7, 7))

	err := RequireOwner(7, 8)
	assert.Error(t, err)
	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, 403, apiErr.Status)
}

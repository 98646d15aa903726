package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	pg := NewPagination(1, 10, 25)
	assert.Equal(t, int64(3), pg.TotalPages)
	assert.True(t, pg.HasMore)
	assert.Equal(t, 1, pg.From)
	assert.Equal(t, 10, pg.To)

	pg = NewPagination(3, 10, 25)
	assert.False(t, pg.HasMore)
	assert.Equal(t, 21, pg.From)
	assert.Equal(t, 25, pg.To)

	// Past the end: an empty page, not an error.
	pg = NewPagination(4, 10, 25)
	assert.Equal(t, 0, pg.From)
	assert.Equal(t, 0, pg.To)
	assert.False(t, pg.HasMore)

	pg = NewPagination(1, 10, 0)
	assert.Equal(t, int64(0), pg.TotalPages)
	assert.Equal(t, 0, pg.From)
	assert.Equal(t, 0, pg.To)
}

func TestNewPaginationNormalizesInput(t *testing.T) {
	pg := NewPagination(0, -5, 100)
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, defaultPageSize, pg.PageSize)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Page(items, 1, 2))
	assert.Equal(t, []int{3, 4}, Page(items, 2, 2))
	// Partial last page.
	assert.Equal(t, []int{5}, Page(items, 3, 2))
	assert.Empty(t, Page(items, 4, 2))
	assert.Empty(t, Page([]int{}, 1, 2))
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	page := Page{}.Normalize(10)
	assert.Equal(t, Page{Number: 1, Size: 10}, page)

	page = Page{Number: -3, Size: 0}.Normalize(6)
	assert.Equal(t, Page{Number: 1, Size: 6}, page)

	// Explicit values survive normalization.
	page = Page{Number: 2, Size: 25}.Normalize(10)
	assert.Equal(t, Page{Number: 2, Size: 25}, page)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 6, Page{Number: 2, Size: 6}.Offset())
	assert.Equal(t, 30, Page{Number: 4, Size: 10}.Offset())
}

func TestPageResultTotalPages(t *testing.T) {
	result := PageResult[int]{TotalCount: 20, Size: 6}
	assert.Equal(t, int64(4), result.TotalPages())

	result = PageResult[int]{TotalCount: 12, Size: 6}
	assert.Equal(t, int64(2), result.TotalPages())

	result = PageResult[int]{TotalCount: 0, Size: 10}
	assert.Equal(t, int64(0), result.TotalPages())

	result = PageResult[int]{TotalCount: 5, Size: 0}
	assert.Equal(t, int64(0), result.TotalPages())
}

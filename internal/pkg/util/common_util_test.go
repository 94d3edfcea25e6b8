package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		wantField string
		wantOrder int
	}{
		{"empty defaults to newest first", "", "createdAt", -1},
		{"descending", "-views", "views", -1},
		{"ascending", "title", "title", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order := ParseSort(tt.sort)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", 0, 0, 1, 10},
		{"negative page clamps", -3, 20, 1, 20},
		{"limit caps at 100", 2, 500, 2, 100},
		{"valid values pass through", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
}

func TestIsQuestionTitle(t *testing.T) {
	assert.True(t, IsQuestionTitle("How do I rotate crops?"))
	assert.True(t, IsQuestionTitle("  spacing for okra?  "))
	assert.False(t, IsQuestionTitle("Fresh mangoes for sale"))
	assert.False(t, IsQuestionTitle("?" + " but not at the end"))
	assert.False(t, IsQuestionTitle(""))
}

package util

import (
	"strings"
)

// ParseSort splits a sort expression like "-createdAt" into a field name
// and a Mongo sort order (1 ascending, -1 descending).
func ParseSort(sort string) (string, int) {
	if sort == "" {
		sort = "-createdAt"
	}
	if strings.HasPrefix(sort, "-") {
		return strings.TrimPrefix(sort, "-"), -1
	}
	return sort, 1
}

// NormalizePagination clamps page and limit to sane values.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// IsQuestionTitle reports whether a trimmed title reads as a question.
func IsQuestionTitle(title string) bool {
	return strings.HasSuffix(strings.TrimSpace(title), "?")
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"limit capped", 1, 1000, 1, maxPageSize},
		{"passthrough", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := clampPage(tt.page, tt.limit, 20)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(2, 20, 45)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = newPagination(1, 20, 0)
	assert.Equal(t, 0, p.TotalPages)
}

package service

import "github.com/atelier-vn/shop-api/internal/domain"

const maxPageSize = 200

// clampPage normalizes page and limit, falling back to defaultLimit
func clampPage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// newPagination builds the pagination envelope for a list response
func newPagination(page, limit int, total int64) domain.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

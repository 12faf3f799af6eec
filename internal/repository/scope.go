package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ListScope holds the common list query options. All filters are
// conjunctive; Search is matched case-insensitively against SearchColumns.
type ListScope struct {
	Filters       map[string]interface{}
	Search        string
	SearchColumns []string
	StartDate     *time.Time
	EndDate       *time.Time
	Order         string
	Page          int
	Limit         int
}

// applyScope applies equality filters, search, and the created_at date range
func applyScope(query *gorm.DB, scope ListScope) *gorm.DB {
	for column, value := range scope.Filters {
		query = query.Where(column+" = ?", value)
	}

	if scope.Search != "" && len(scope.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(scope.Search) + "%"
		conditions := make([]string, 0, len(scope.SearchColumns))
		args := make([]interface{}, 0, len(scope.SearchColumns))
		for _, column := range scope.SearchColumns {
			conditions = append(conditions, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	if scope.StartDate != nil {
		query = query.Where("created_at >= ?", *scope.StartDate)
	}
	if scope.EndDate != nil {
		query = query.Where("created_at <= ?", *scope.EndDate)
	}

	return query
}

// applyPage orders and paginates a scoped query
func applyPage(query *gorm.DB, scope ListScope) *gorm.DB {
	order := scope.Order
	if order == "" {
		order = "created_at DESC"
	}
	offset := (scope.Page - 1) * scope.Limit
	return query.Order(order).Offset(offset).Limit(scope.Limit)
}

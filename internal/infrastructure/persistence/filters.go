package persistence

import (
	"github.com/aqari/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyListFilter applies pagination and whitelisted ordering to a list query
func applyListFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, sortFields, "")
	if orderBy != "" {
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(defaultOrder)
	}

	return query
}

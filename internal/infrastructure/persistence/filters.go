package persistence

import (
	"strings"

	"github.com/atolye/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// queryPage runs a count-then-fetch over an already scoped query and returns
// one page of results. The query must carry its Model and tenant scoping;
// ordering falls back to newest-first when the requested column is not in the
// sortable set.
func queryPage[T any](query *gorm.DB, filter shared.Filter, sortable ...string) (shared.Paginated[*T], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*T]{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items := make([]*T, 0, pageSize)
	err := query.
		Order(orderClause(filter, sortable)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return shared.Paginated[*T]{}, err
	}

	return shared.NewPaginated(items, total, page, pageSize), nil
}

// orderClause builds a safe ORDER BY clause. The column is validated against
// the sortable allowlist so user input never reaches the SQL text.
func orderClause(filter shared.Filter, sortable []string) string {
	column := "created_at"
	for _, candidate := range sortable {
		if filter.OrderBy == candidate {
			column = candidate
			break
		}
	}

	direction := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

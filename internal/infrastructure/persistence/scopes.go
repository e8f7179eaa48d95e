package persistence

import (
	"errors"

	"github.com/grocery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// NotDeleted restricts a query to rows that have not been soft-deleted.
// Every read path that hides deleted rows goes through this scope.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// Paginate applies the filter's page window
func Paginate(filter shared.Filter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		size := filter.PageSize
		if size <= 0 {
			size = shared.DefaultPageSize
		}
		if size > shared.MaxPageSize {
			size = shared.MaxPageSize
		}
		page := filter.Page
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}

func notFoundOr(err error, notFound *shared.DomainError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

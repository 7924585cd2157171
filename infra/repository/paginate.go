package repository

import "gorm.io/gorm"

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 20

// MaxPageSize caps the page size of list queries.
const MaxPageSize = 100

// Paginate returns a gorm scope selecting the given 1-based page.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		switch {
		case pageSize <= 0:
			pageSize = DefaultPageSize
		case pageSize > MaxPageSize:
			pageSize = MaxPageSize
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

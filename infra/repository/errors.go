package repository

import (
	"errors"

	"github.com/amirasaad/bankapi/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain error kinds so that
// database errors never leak past the repository layer. The whole error
// chain is searched.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewError(domain.ErrAlreadyExists, "resource already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewError(domain.ErrConflict, "resource is still referenced")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	}
	return err
}

// WrapError runs a GORM operation and maps its error.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(user).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// WrapNotFound is WrapError for lookups: a missing record is reported as
// notFound, which should be an entity specific error of kind domain.ErrNotFound.
func WrapNotFound(op func() error, notFound error) error {
	err := op()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return MapGormErrorToDomain(err)
}

package repository

import (
	"context"
	"reflect"

	"github.com/amirasaad/bankapi/pkg/repository/account"
	"github.com/amirasaad/bankapi/pkg/repository/transaction"
	"github.com/amirasaad/bankapi/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access. Repositories obtained from the UnitOfWork passed to the
// Do callback share its database transaction.
//
// Example usage:
//
//	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
//		repoAny, err := uow.GetRepository(reflect.TypeOf((*account.Repository)(nil)).Elem())
//		if err != nil {
//			return err
//		}
//		repo := repoAny.(account.Repository)
//		...
//	})
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the
	// current transaction when called inside Do.
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe repository access methods
	AccountRepository() (account.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	UserRepository() (user.Repository, error)
}

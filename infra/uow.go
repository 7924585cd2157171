package infra

import (
	"context"
	"fmt"
	"reflect"

	accountrepo "github.com/amirasaad/bankapi/infra/repository/account"
	transactionrepo "github.com/amirasaad/bankapi/infra/repository/transaction"
	userrepo "github.com/amirasaad/bankapi/infra/repository/user"
	"github.com/amirasaad/bankapi/pkg/repository"
	"github.com/amirasaad/bankapi/pkg/repository/account"
	"github.com/amirasaad/bankapi/pkg/repository/transaction"
	"github.com/amirasaad/bankapi/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Every repository handed out by a UoW inside Do shares the same gorm
// transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*account.Repository)(nil)).Elem():     func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*transaction.Repository)(nil)).Elem(): func(db *gorm.DB) any { return transactionrepo.New(db) },
			reflect.TypeOf((*user.Repository)(nil)).Elem():        func(db *gorm.DB) any { return userrepo.New(db) },
		},
	}
}

// Do runs fn in a database transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including when ctx is cancelled
// before the commit. Nested calls join the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		if err := fn(txnUow); err != nil {
			return err
		}
		return ctx.Err()
	})
}

// GetRepository returns a repository of repoType bound to the current
// transaction, or to the plain connection outside Do.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns the account repository of this unit of work.
func (u *UoW) AccountRepository() (account.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*account.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(account.Repository), nil
}

// TransactionRepository returns the transaction repository of this unit of work.
func (u *UoW) TransactionRepository() (transaction.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*transaction.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(transaction.Repository), nil
}

// UserRepository returns the user repository of this unit of work.
func (u *UoW) UserRepository() (user.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*user.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(user.Repository), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Package account provides business logic for opening, reading, editing and
// closing accounts, and the Ledger that owns balance mutations.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides account operations. Balance changes go through Ledger.
type Service struct {
	uow             repository.UnitOfWork
	defaultCurrency string
	logger          *slog.Logger
}

// NewService creates a new Service. An empty defaultCurrency means USD.
func NewService(
	uow repository.UnitOfWork,
	defaultCurrency string,
	logger *slog.Logger,
) *Service {
	if defaultCurrency == "" {
		defaultCurrency = account.DefaultCurrency
	}
	return &Service{
		uow:             uow,
		defaultCurrency: defaultCurrency,
		logger:          logger.With("service", "account"),
	}
}

// Open creates an account with a zero balance for an existing user.
func (s *Service) Open(
	ctx context.Context,
	in dto.AccountOpen,
) (out *dto.AccountRead, err error) {
	logger := s.logger.With("userID", in.UserID, "type", in.AccountType)
	currency := in.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	builder := account.New().
		WithUserID(in.UserID).
		WithType(account.Type(in.AccountType)).
		WithCurrency(currency).
		WithInterestRate(in.InterestRate).
		WithBranchCode(in.BranchCode).
		WithNickname(in.Nickname)
	if in.OverdraftLimit != nil {
		builder = builder.WithOverdraftLimit(*in.OverdraftLimit)
	}
	acct, err := builder.Build()
	if err != nil {
		logger.Warn("Open account rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := users.Exists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return user.ErrUserNotFound
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, toCreateDTO(acct)); err != nil {
			return err
		}
		out, err = repo.Get(ctx, acct.ID)
		return err
	})
	if err != nil {
		logger.Error("Open account failed", "error", err)
		return nil, err
	}
	logger.Info("Account opened", "accountID", out.ID, "currency", out.Currency)
	return out, nil
}

// Get returns an account the actor may see.
func (s *Service) Get(
	ctx context.Context,
	actor *user.Identity,
	id uuid.UUID,
) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(acct.UserID) {
		return nil, account.ErrNotOwner
	}
	return acct, nil
}

// List returns one page of all accounts.
func (s *Service) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, page, pageSize)
}

// ListByUser returns the accounts of userID.
func (s *Service) ListByUser(
	ctx context.Context,
	actor *user.Identity,
	userID uuid.UUID,
) ([]*dto.AccountRead, error) {
	if !actor.CanAccess(userID) {
		return nil, account.ErrNotOwner
	}
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// Update applies administrative edits after checking them against the
// current balance.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.AccountUpdate,
) (out *dto.AccountRead, err error) {
	logger := s.logger.With("accountID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		acct := ToDomain(current)
		if update.AccountType != nil {
			acct.Type = account.Type(*update.AccountType)
		}
		if update.Status != nil {
			acct.Status = account.Status(*update.Status)
		}
		if update.OverdraftLimit != nil {
			acct.OverdraftLimit = *update.OverdraftLimit
		}
		if update.InterestRate != nil {
			rate := *update.InterestRate
			acct.InterestRate = &rate
		}
		if err := acct.ValidateSettings(); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		out, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		logger.Warn("Update account failed", "error", err)
		return nil, err
	}
	logger.Info("Account updated")
	return out, nil
}

// Remove deletes an account whose balance is exactly zero.
func (s *Service) Remove(
	ctx context.Context,
	id uuid.UUID,
) error {
	logger := s.logger.With("accountID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := ToDomain(current).CanClose(); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		logger.Warn("Remove account failed", "error", err)
		return err
	}
	logger.Info("Account removed")
	return nil
}

// Balance returns the current balance of an account the actor may see.
func (s *Service) Balance(
	ctx context.Context,
	actor *user.Identity,
	id uuid.UUID,
) (decimal.Decimal, error) {
	acct, err := s.Get(ctx, actor, id)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

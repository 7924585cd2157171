// Package transaction processes deposits, withdrawals and transfers.
//
// Every run of the processor is one unit of work: the transaction record is
// inserted as pending, the balance legs are applied through the ledger and
// the record is marked completed. Any error rolls the whole unit back, so a
// completed record always has its balance effect in the store and a transfer
// is never half applied.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/metrics"
	"github.com/amirasaad/bankapi/pkg/repository"
	accountsvc "github.com/amirasaad/bankapi/pkg/service/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status label used in metrics for commands rejected before any store access.
const statusRejected = "rejected"

// Processor runs transactions against the ledger.
type Processor struct {
	uow     repository.UnitOfWork
	ledger  *accountsvc.Ledger
	metrics metrics.Collector
	logger  *slog.Logger
}

// NewProcessor creates a Processor. A nil collector disables metrics.
func NewProcessor(
	uow repository.UnitOfWork,
	ledger *accountsvc.Ledger,
	collector metrics.Collector,
	logger *slog.Logger,
) *Processor {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Processor{
		uow:     uow,
		ledger:  ledger,
		metrics: collector,
		logger:  logger.With("service", "transaction"),
	}
}

// Create validates and executes cmd. Validation failures return before the
// store is touched. When the run fails on a business rule after the source
// account was found, a failed record of the attempt is written in a separate
// unit of work; cancellations and infrastructure errors leave no record.
func (p *Processor) Create(
	ctx context.Context,
	cmd dto.TransactionCommand,
) (out *dto.TransactionRead, err error) {
	start := time.Now()
	logger := p.logger.With(
		"accountID", cmd.AccountID,
		"type", cmd.Type,
		"amount", cmd.Amount.String(),
		"actorID", cmd.ActorID,
	)
	actorRoles, _ := user.ParseRoles(cmd.ActorRoles)
	isAdmin := actorRoles.Has(user.RoleAdmin)
	initiator := account.InitiatorUser
	if isAdmin {
		initiator = account.InitiatorAdmin
	}

	tx, err := account.NewTransaction(
		cmd.AccountID,
		account.TransactionType(cmd.Type),
		cmd.Amount,
		cmd.Currency,
		cmd.RelatedAccountID,
		initiator,
	)
	if err != nil {
		logger.Info("Transaction rejected", "error", err)
		p.metrics.RecordTransaction(cmd.Type, statusRejected, time.Since(start))
		return nil, err
	}
	tx.Reference = cmd.Reference
	tx.Notes = cmd.Notes

	sourceFound := false
	err = p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		src, err := accounts.Get(ctx, tx.AccountID)
		if err != nil {
			return err
		}
		if !isAdmin && src.UserID != cmd.ActorID {
			return account.ErrNotOwner
		}
		sourceFound = true
		if account.Status(src.Status) != account.StatusActive {
			return account.ErrAccountNotActive
		}
		if cmd.Currency == "" {
			tx.Currency = src.Currency
		} else if tx.Currency != src.Currency {
			return account.ErrCurrencyMismatch
		}

		if err := txs.Create(ctx, toCreateDTO(tx)); err != nil {
			return err
		}
		if err := p.apply(ctx, uow, tx, src); err != nil {
			return err
		}
		if err := tx.Complete(); err != nil {
			return err
		}
		status := string(tx.Status)
		if err := txs.Update(ctx, tx.ID, dto.TransactionUpdate{Status: &status}); err != nil {
			return err
		}
		out, err = txs.Get(ctx, tx.ID)
		return err
	})
	if err != nil {
		out = nil
		status := statusRejected
		if sourceFound && shouldRecordFailure(ctx, err) {
			if recErr := p.recordFailure(context.WithoutCancel(ctx), tx); recErr != nil {
				logger.Error("Persist failed transaction record failed", "error", recErr)
			} else {
				status = string(account.StatusFailed)
			}
		}
		p.metrics.RecordTransaction(cmd.Type, status, time.Since(start))
		if domain.IsBusiness(err) {
			logger.Info("Transaction failed", "error", err)
		} else {
			logger.Error("Transaction aborted", "error", err)
		}
		return nil, err
	}

	p.metrics.RecordTransaction(cmd.Type, out.Status, time.Since(start))
	logger.Info("Transaction completed", "transactionID", out.ID)
	return out, nil
}

// apply performs the balance legs of tx inside uow.
func (p *Processor) apply(
	ctx context.Context,
	uow repository.UnitOfWork,
	tx *account.Transaction,
	src *dto.AccountRead,
) error {
	srcDelta, dstDelta := tx.Deltas()
	if tx.Type != account.TypeTransfer {
		_, err := p.ledger.Apply(ctx, uow, tx.AccountID, srcDelta)
		return err
	}

	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	dst, err := accounts.Get(ctx, *tx.RelatedAccountID)
	if err != nil {
		return err
	}
	if err := accountsvc.ToDomain(src).ValidateTransfer(accountsvc.ToDomain(dst), tx.Amount); err != nil {
		return err
	}
	// Lock both rows in id order so opposite transfers cannot deadlock.
	first, second := src.ID, dst.ID
	if first.String() > second.String() {
		first, second = second, first
	}
	for _, id := range []uuid.UUID{first, second} {
		if _, err := accounts.GetForUpdate(ctx, id); err != nil {
			return err
		}
	}
	if _, err := p.ledger.Apply(ctx, uow, src.ID, srcDelta); err != nil {
		return err
	}
	_, err = p.ledger.Apply(ctx, uow, dst.ID, dstDelta)
	return err
}

// shouldRecordFailure reports whether a failed attempt deserves a record.
// Forbidden attempts are not recorded against accounts the actor does not own.
func shouldRecordFailure(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return domain.IsBusiness(err) && !errors.Is(err, domain.ErrForbidden)
}

func (p *Processor) recordFailure(ctx context.Context, tx *account.Transaction) error {
	failed := *tx
	if err := failed.Fail(); err != nil {
		return err
	}
	return p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return txs.Create(ctx, toCreateDTO(&failed))
	})
}

// Get returns a transaction on an account the actor owns, or any transaction
// for admins.
func (p *Processor) Get(
	ctx context.Context,
	actor *user.Identity,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	txs, err := p.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := txs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return tx, nil
	}
	accounts, err := p.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	ids := []uuid.UUID{tx.AccountID}
	if tx.RelatedAccountID != nil {
		ids = append(ids, *tx.RelatedAccountID)
	}
	for _, accountID := range ids {
		acct, err := accounts.Get(ctx, accountID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if actor.CanAccess(acct.UserID) {
			return tx, nil
		}
	}
	return nil, account.ErrNotOwner
}

// List returns one page of all transactions, newest first.
func (p *Processor) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.TransactionRead, error) {
	txs, err := p.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return txs.List(ctx, page, pageSize)
}

// ListByAccount returns the transactions of an account the actor may see.
func (p *Processor) ListByAccount(
	ctx context.Context,
	actor *user.Identity,
	accountID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	accounts, err := p.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(acct.UserID) {
		return nil, account.ErrNotOwner
	}
	txs, err := p.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return txs.ListByAccount(ctx, accountID)
}

// Update edits the notes or reference of a transaction that is not completed.
// The status can only change through processing.
func (p *Processor) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.TransactionUpdate,
) (out *dto.TransactionRead, err error) {
	update.Status = nil
	err = p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		current, err := txs.Get(ctx, id)
		if err != nil {
			return err
		}
		if account.TransactionStatus(current.Status) == account.StatusCompleted {
			return account.ErrTransactionCompleted
		}
		if err := txs.Update(ctx, id, update); err != nil {
			return err
		}
		out, err = txs.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes a transaction that is not completed.
func (p *Processor) Remove(
	ctx context.Context,
	id uuid.UUID,
) error {
	return p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		current, err := txs.Get(ctx, id)
		if err != nil {
			return err
		}
		if account.TransactionStatus(current.Status) == account.StatusCompleted {
			return account.ErrTransactionCompleted
		}
		return txs.Delete(ctx, id)
	})
}

// ClearBalance brings the balance of an account to exactly zero and records
// the compensating deposit or withdrawal as initiated by an admin. It returns
// a nil transaction when the balance already is zero. Only admins may clear.
func (p *Processor) ClearBalance(
	ctx context.Context,
	actor *user.Identity,
	accountID uuid.UUID,
) (acct *dto.AccountRead, out *dto.TransactionRead, err error) {
	start := time.Now()
	logger := p.logger.With("accountID", accountID, "operation", "clear")
	if !actor.IsAdmin() {
		logger.Warn("Clear balance rejected", "reason", "not admin")
		return nil, nil, account.ErrNotOwner
	}
	var txType account.TransactionType
	err = p.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		current, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if current.Balance.IsZero() {
			acct = current
			return nil
		}
		delta := current.Balance.Neg()
		txType = account.TypeDeposit
		if delta.IsNegative() {
			txType = account.TypeWithdrawal
		}
		tx, err := account.NewTransaction(
			accountID,
			txType,
			delta.Abs(),
			current.Currency,
			nil,
			account.InitiatorAdmin,
		)
		if err != nil {
			return err
		}
		tx.Notes = "balance cleared"
		if err := txs.Create(ctx, toCreateDTO(tx)); err != nil {
			return err
		}
		if acct, err = p.ledger.Apply(ctx, uow, accountID, delta); err != nil {
			return err
		}
		if err := tx.Complete(); err != nil {
			return err
		}
		status := string(tx.Status)
		if err := txs.Update(ctx, tx.ID, dto.TransactionUpdate{Status: &status}); err != nil {
			return err
		}
		out, err = txs.Get(ctx, tx.ID)
		return err
	})
	if err != nil {
		logger.Warn("Clear balance failed", "error", err)
		return nil, nil, err
	}
	if out != nil {
		p.metrics.RecordTransaction(string(txType), out.Status, time.Since(start))
		logger.Info("Balance cleared", "transactionID", out.ID, "amount", out.Amount.String())
	}
	return acct, out, nil
}

func toCreateDTO(tx *account.Transaction) dto.TransactionCreate {
	fee := tx.TransactionFee
	if fee.IsNegative() {
		fee = decimal.Zero
	}
	return dto.TransactionCreate{
		ID:               tx.ID,
		AccountID:        tx.AccountID,
		Type:             string(tx.Type),
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Status:           string(tx.Status),
		RelatedAccountID: tx.RelatedAccountID,
		TransactionFee:   fee,
		Reference:        tx.Reference,
		Notes:            tx.Notes,
		InitiatedBy:      string(tx.InitiatedBy),
	}
}

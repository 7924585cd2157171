package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/metrics"
	"github.com/amirasaad/bankapi/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is the only writer of account balances.
type Ledger struct {
	uow     repository.UnitOfWork
	metrics metrics.Collector
	logger  *slog.Logger
}

// NewLedger creates a Ledger. A nil collector disables metrics.
func NewLedger(
	uow repository.UnitOfWork,
	collector metrics.Collector,
	logger *slog.Logger,
) *Ledger {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Ledger{uow: uow, metrics: collector, logger: logger.With("service", "ledger")}
}

// UpdateBalance adds delta (negative for debits) to the balance of the
// account in its own unit of work and returns the updated account.
func (l *Ledger) UpdateBalance(
	ctx context.Context,
	accountID uuid.UUID,
	delta decimal.Decimal,
) (out *dto.AccountRead, err error) {
	err = l.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		out, err = l.Apply(ctx, uow, accountID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Apply is UpdateBalance inside the caller's unit of work. The account row
// stays locked until that unit of work ends. On error nothing is written.
func (l *Ledger) Apply(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountID uuid.UUID,
	delta decimal.Decimal,
) (*dto.AccountRead, error) {
	log := l.logger.With("accountID", accountID, "delta", delta.String())
	repo, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	current, err := repo.GetForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	acct := ToDomain(current)
	if !acct.IsActive() {
		l.metrics.RecordBalanceUpdate(false)
		return nil, account.ErrAccountNotActive
	}
	next, err := acct.ApplyDelta(delta)
	if err != nil {
		log.Info("Balance update rejected", "balance", current.Balance.String(), "error", err)
		l.metrics.RecordBalanceUpdate(false)
		return nil, err
	}
	if err := repo.UpdateBalance(ctx, accountID, next); err != nil {
		l.metrics.RecordBalanceUpdate(false)
		return nil, err
	}
	l.metrics.RecordBalanceUpdate(true)
	log.Debug("Balance updated", "balance", next.String())
	updated := *current
	updated.Balance = next
	return &updated, nil
}

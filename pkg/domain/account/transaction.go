package account

import (
	"time"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound is returned when a transaction cannot be found.
	ErrTransactionNotFound = domain.NewError(domain.ErrNotFound, "transaction not found")
	// ErrInvalidTransactionType is returned for types outside deposit/withdrawal/transfer.
	ErrInvalidTransactionType = domain.NewError(domain.ErrValidation, "invalid transaction type")
	// ErrInvalidStatusTransition is returned when a status change would leave a terminal state.
	ErrInvalidStatusTransition = domain.NewError(domain.ErrConflict, "invalid transaction status transition")
	// ErrTransactionCompleted is returned when editing or removing a completed transaction.
	ErrTransactionCompleted = domain.NewError(domain.ErrConflict, "completed transactions cannot be changed")
)

// TransactionType is the kind of balance operation.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer:
		return true
	}
	return false
}

// TransactionStatus is the processing state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Initiator records who started a transaction.
type Initiator string

const (
	InitiatorUser   Initiator = "user"
	InitiatorAdmin  Initiator = "admin"
	InitiatorSystem Initiator = "system"
)

// Transaction is a balance operation against a source account.
type Transaction struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	Type             TransactionType
	Amount           decimal.Decimal
	Currency         string
	Status           TransactionStatus
	RelatedAccountID *uuid.UUID
	TransactionFee   decimal.Decimal
	Reference        string
	Notes            string
	InitiatedBy      Initiator
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTransaction creates a pending transaction after checking the amount,
// the type and the transfer destination.
func NewTransaction(
	accountID uuid.UUID,
	txType TransactionType,
	amount decimal.Decimal,
	currency string,
	related *uuid.UUID,
	initiatedBy Initiator,
) (*Transaction, error) {
	if !txType.Valid() {
		return nil, ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return nil, ErrTransactionAmountMustBePositive
	}
	if !HasCentPrecision(amount) {
		return nil, ErrAmountPrecision
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if !IsValidCurrency(currency) {
		return nil, ErrInvalidCurrencyCode
	}
	if txType == TypeTransfer {
		if related == nil || *related == uuid.Nil {
			return nil, ErrRelatedAccountRequired
		}
		if *related == accountID {
			return nil, ErrCannotTransferToSameAccount
		}
	} else {
		related = nil
	}
	if initiatedBy == "" {
		initiatedBy = InitiatorUser
	}
	now := time.Now().UTC()
	return &Transaction{
		ID:               uuid.New(),
		AccountID:        accountID,
		Type:             txType,
		Amount:           amount,
		Currency:         currency,
		Status:           StatusPending,
		RelatedAccountID: related,
		TransactionFee:   decimal.Zero,
		InitiatedBy:      initiatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Complete moves a pending transaction to completed.
func (t *Transaction) Complete() error {
	return t.transition(StatusCompleted)
}

// Fail moves a pending transaction to failed.
func (t *Transaction) Fail() error {
	return t.transition(StatusFailed)
}

func (t *Transaction) transition(to TransactionStatus) error {
	if t.Status != StatusPending {
		return ErrInvalidStatusTransition
	}
	t.Status = to
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Deltas returns the signed balance changes for the source and, for
// transfers, the destination account.
func (t *Transaction) Deltas() (source, destination decimal.Decimal) {
	switch t.Type {
	case TypeDeposit:
		return t.Amount, decimal.Zero
	case TypeWithdrawal:
		return t.Amount.Neg(), decimal.Zero
	case TypeTransfer:
		return t.Amount.Neg(), t.Amount
	}
	return decimal.Zero, decimal.Zero
}

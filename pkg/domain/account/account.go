package account

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"time"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an account or transaction does not name one.
const DefaultCurrency = "USD"

var (
	// ErrInsufficientFunds is returned when a debit would take the balance below the overdraft limit.
	ErrInsufficientFunds = domain.NewError(domain.ErrConflict, "insufficient funds")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = domain.NewError(domain.ErrNotFound, "account not found")

	// ErrTransactionAmountMustBePositive is returned when a transaction amount is not positive.
	ErrTransactionAmountMustBePositive = domain.NewError(domain.ErrValidation, "transaction amount must be positive")

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted from an account to itself.
	ErrCannotTransferToSameAccount = domain.NewError(domain.ErrValidation, "cannot transfer to same account")

	// ErrRelatedAccountRequired is returned when a transfer does not name a destination.
	ErrRelatedAccountRequired = domain.NewError(domain.ErrValidation, "related account ID is required for transfers")

	// ErrNotOwner is returned when a user acts on an account they do not own.
	ErrNotOwner = domain.NewError(domain.ErrForbidden, "not owner")

	// ErrCurrencyMismatch is returned when currencies of accounts or transactions differ.
	ErrCurrencyMismatch = domain.NewError(domain.ErrConflict, "currency mismatch")

	// ErrAccountNotActive is returned for balance operations on frozen or closed accounts.
	ErrAccountNotActive = domain.NewError(domain.ErrConflict, "account is not active")

	// ErrNonZeroBalance is returned when removing an account whose balance is not zero.
	ErrNonZeroBalance = domain.NewError(domain.ErrConflict, "cannot close account with non-zero balance")

	// ErrInvalidCurrencyCode is returned for currency codes that are not three upper-case letters.
	ErrInvalidCurrencyCode = domain.NewError(domain.ErrValidation, "invalid currency code")

	// ErrInvalidOverdraftLimit is returned for negative overdraft limits.
	ErrInvalidOverdraftLimit = domain.NewError(domain.ErrValidation, "overdraft limit must not be negative")

	// ErrInvalidInterestRate is returned for interest rates outside 0-100 or on non-savings accounts.
	ErrInvalidInterestRate = domain.NewError(domain.ErrValidation, "interest rate must be between 0 and 100 and only set on savings accounts")

	// ErrInvalidAccountType is returned for account types outside the known set.
	ErrInvalidAccountType = domain.NewError(domain.ErrValidation, "invalid account type")

	// ErrInvalidAccountStatus is returned for account statuses outside the known set.
	ErrInvalidAccountStatus = domain.NewError(domain.ErrValidation, "invalid account status")

	// ErrAmountPrecision is returned for money values with fractions of a cent.
	ErrAmountPrecision = domain.NewError(domain.ErrValidation, "amounts must have at most two decimal places")
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidCurrency reports whether code looks like an ISO 4217 code.
func IsValidCurrency(code string) bool {
	return currencyPattern.MatchString(code)
}

// moneyScale is the number of decimal places stored for money columns.
const moneyScale = 2

// HasCentPrecision reports whether d can be stored without rounding.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(moneyScale))
}

// Type is the product type of an account.
type Type string

const (
	TypeSavings  Type = "savings"
	TypeChecking Type = "checking"
	TypeCurrent  Type = "current"
)

// Valid reports whether t is a known account type.
func (t Type) Valid() bool {
	switch t {
	case TypeSavings, TypeChecking, TypeCurrent:
		return true
	}
	return false
}

// Status is the lifecycle state of an account.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusFrozen Status = "frozen"
)

// Valid reports whether s is a known account status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusFrozen:
		return true
	}
	return false
}

// Account is a user's financial account.
//
// Invariants:
//   - An account always has an owner (UserID).
//   - Balance >= -OverdraftLimit at all times.
//   - OverdraftLimit >= 0.
//   - Balance is only changed through ApplyDelta.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	AccountNumber  string
	Type           Type
	Balance        decimal.Decimal
	Currency       string
	Status         Status
	OverdraftLimit decimal.Decimal
	InterestRate   *decimal.Decimal
	BranchCode     string
	Nickname       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id             uuid.UUID
	userID         uuid.UUID
	accountNumber  string
	accountType    Type
	balance        decimal.Decimal
	currency       string
	status         Status
	overdraftLimit decimal.Decimal
	interestRate   *decimal.Decimal
	branchCode     string
	nickname       string
	createdAt      time.Time
}

// New creates a new Builder with sensible defaults: a new UUID, a generated
// account number, the default currency and an active current account.
func New() *Builder {
	return &Builder{
		id:          uuid.New(),
		accountType: TypeCurrent,
		currency:    DefaultCurrency,
		status:      StatusActive,
		createdAt:   time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owner. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithAccountNumber overrides the generated account number.
func (b *Builder) WithAccountNumber(n string) *Builder {
	b.accountNumber = n
	return b
}

// WithType sets the account type.
func (b *Builder) WithType(t Type) *Builder {
	b.accountType = t
	return b
}

// WithCurrency sets the currency. Empty keeps the default.
func (b *Builder) WithCurrency(code string) *Builder {
	if code != "" {
		b.currency = code
	}
	return b
}

// WithBalance sets the opening balance. Only for hydration and test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithOverdraftLimit sets the overdraft limit.
func (b *Builder) WithOverdraftLimit(limit decimal.Decimal) *Builder {
	b.overdraftLimit = limit
	return b
}

// WithInterestRate sets the interest rate of a savings account.
func (b *Builder) WithInterestRate(rate *decimal.Decimal) *Builder {
	b.interestRate = rate
	return b
}

// WithBranchCode sets the branch the account was opened at.
func (b *Builder) WithBranchCode(code string) *Builder {
	b.branchCode = code
	return b
}

// WithNickname sets a custom nickname.
func (b *Builder) WithNickname(nickname string) *Builder {
	b.nickname = nickname
	return b
}

// Build validates all invariants and returns the account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, domain.NewError(domain.ErrValidation, "userID is required")
	}
	if !b.accountType.Valid() {
		return nil, ErrInvalidAccountType
	}
	if !b.status.Valid() {
		return nil, ErrInvalidAccountStatus
	}
	if !IsValidCurrency(b.currency) {
		return nil, ErrInvalidCurrencyCode
	}
	if b.overdraftLimit.IsNegative() {
		return nil, ErrInvalidOverdraftLimit
	}
	if !HasCentPrecision(b.overdraftLimit) || !HasCentPrecision(b.balance) {
		return nil, ErrAmountPrecision
	}
	if err := validateInterestRate(b.accountType, b.interestRate); err != nil {
		return nil, err
	}
	if b.balance.LessThan(b.overdraftLimit.Neg()) {
		return nil, ErrInsufficientFunds
	}
	number := b.accountNumber
	if number == "" {
		var err error
		if number, err = GenerateAccountNumber(); err != nil {
			return nil, err
		}
	}
	return &Account{
		ID:             b.id,
		UserID:         b.userID,
		AccountNumber:  number,
		Type:           b.accountType,
		Balance:        b.balance,
		Currency:       b.currency,
		Status:         b.status,
		OverdraftLimit: b.overdraftLimit,
		InterestRate:   b.interestRate,
		BranchCode:     b.branchCode,
		Nickname:       b.nickname,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.createdAt,
	}, nil
}

func validateInterestRate(t Type, rate *decimal.Decimal) error {
	if rate == nil {
		return nil
	}
	if t != TypeSavings || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidInterestRate
	}
	return nil
}

// ValidateSettings checks the administrative fields after an edit.
func (a *Account) ValidateSettings() error {
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	if !a.Status.Valid() {
		return ErrInvalidAccountStatus
	}
	if a.OverdraftLimit.IsNegative() {
		return ErrInvalidOverdraftLimit
	}
	if !HasCentPrecision(a.OverdraftLimit) {
		return ErrAmountPrecision
	}
	if a.Balance.LessThan(a.OverdraftLimit.Neg()) {
		return ErrInsufficientFunds
	}
	return validateInterestRate(a.Type, a.InterestRate)
}

// IsActive reports whether the account accepts balance operations.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// ApplyDelta computes the balance after adding delta (negative for debits)
// and rejects it with ErrInsufficientFunds when it would fall below
// -OverdraftLimit. Deltas with fractions of a cent are rejected with
// ErrAmountPrecision. The account is only modified on success.
func (a *Account) ApplyDelta(delta decimal.Decimal) (decimal.Decimal, error) {
	if !HasCentPrecision(delta) {
		return a.Balance, ErrAmountPrecision
	}
	next := a.Balance.Add(delta)
	if next.LessThan(a.OverdraftLimit.Neg()) {
		return a.Balance, ErrInsufficientFunds
	}
	a.Balance = next
	return next, nil
}

// CanClose reports whether the account may be removed.
func (a *Account) CanClose() error {
	if !a.Balance.IsZero() {
		return ErrNonZeroBalance
	}
	return nil
}

// ValidateTransfer checks that a transfer of amount from a to dest can be attempted.
// Funds are checked by ApplyDelta.
func (a *Account) ValidateTransfer(dest *Account, amount decimal.Decimal) error {
	if dest == nil {
		return ErrAccountNotFound
	}
	if a.ID == dest.ID {
		return ErrCannotTransferToSameAccount
	}
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if !dest.IsActive() {
		return ErrAccountNotActive
	}
	if a.Currency != dest.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}

// GenerateAccountNumber returns a random 10-digit account number.
func GenerateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9_000_000_000))
	if err != nil {
		return "", err
	}
	return n.Add(n, big.NewInt(1_000_000_000)).String(), nil
}

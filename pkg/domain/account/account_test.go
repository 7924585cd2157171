package account_test

import (
	"testing"

	"github.com/amirasaad/bankapi/pkg/domain"
	domainaccount "github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	acc, err := domainaccount.New().WithUserID(uuid.New()).Build()
	require.NoError(err)
	assert.NotEqual(t, uuid.Nil, acc.ID)
	assert.Len(t, acc.AccountNumber, 10)
	assert.Equal(t, domainaccount.DefaultCurrency, acc.Currency)
	assert.Equal(t, domainaccount.StatusActive, acc.Status)
	assert.True(t, acc.Balance.IsZero())
}

func TestBuild_Validation(t *testing.T) {
	t.Parallel()
	rate := decimal.NewFromFloat(2.5)
	tooHigh := decimal.NewFromInt(101)

	tests := []struct {
		name    string
		builder *domainaccount.Builder
		wantErr error
	}{
		{"missing owner", domainaccount.New(), domain.ErrValidation},
		{"bad currency", domainaccount.New().WithUserID(uuid.New()).WithCurrency("usd"), domainaccount.ErrInvalidCurrencyCode},
		{"bad type", domainaccount.New().WithUserID(uuid.New()).WithType("crypto"), domainaccount.ErrInvalidAccountType},
		{"negative overdraft", domainaccount.New().WithUserID(uuid.New()).WithOverdraftLimit(decimal.NewFromInt(-1)), domainaccount.ErrInvalidOverdraftLimit},
		{"interest on checking", domainaccount.New().WithUserID(uuid.New()).WithType(domainaccount.TypeChecking).WithInterestRate(&rate), domainaccount.ErrInvalidInterestRate},
		{"interest above 100", domainaccount.New().WithUserID(uuid.New()).WithType(domainaccount.TypeSavings).WithInterestRate(&tooHigh), domainaccount.ErrInvalidInterestRate},
		{"sub-cent overdraft", domainaccount.New().WithUserID(uuid.New()).WithOverdraftLimit(decimal.RequireFromString("10.005")), domainaccount.ErrAmountPrecision},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.Build()
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	acc, err := domainaccount.New().WithUserID(uuid.New()).WithType(domainaccount.TypeSavings).WithInterestRate(&rate).Build()
	require.NoError(t, err)
	assert.True(t, acc.InterestRate.Equal(rate))
}

func TestApplyDelta(t *testing.T) {
	t.Parallel()
	newAccount := func(balance, overdraft int64) *domainaccount.Account {
		acc, err := domainaccount.New().
			WithUserID(uuid.New()).
			WithBalance(decimal.NewFromInt(balance)).
			WithOverdraftLimit(decimal.NewFromInt(overdraft)).
			Build()
		require.NoError(t, err)
		return acc
	}

	t.Run("credit", func(t *testing.T) {
		acc := newAccount(100, 0)
		next, err := acc.ApplyDelta(decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.Equal(t, "150", next.String())
	})

	t.Run("debit within balance", func(t *testing.T) {
		acc := newAccount(100, 0)
		next, err := acc.ApplyDelta(decimal.NewFromInt(-100))
		require.NoError(t, err)
		assert.True(t, next.IsZero())
	})

	t.Run("debit beyond balance", func(t *testing.T) {
		acc := newAccount(100, 0)
		_, err := acc.ApplyDelta(decimal.NewFromInt(-150))
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
		assert.Equal(t, "100", acc.Balance.String())
	})

	t.Run("debit into overdraft", func(t *testing.T) {
		acc := newAccount(100, 50)
		next, err := acc.ApplyDelta(decimal.NewFromInt(-150))
		require.NoError(t, err)
		assert.Equal(t, "-50", next.String())

		_, err = acc.ApplyDelta(decimal.RequireFromString("-0.01"))
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
	})

	t.Run("sub-cent delta", func(t *testing.T) {
		acc := newAccount(100, 0)
		_, err := acc.ApplyDelta(decimal.RequireFromString("0.004"))
		assert.ErrorIs(t, err, domainaccount.ErrAmountPrecision)
		assert.Equal(t, "100", acc.Balance.String())
	})

	t.Run("no drift over repeated cents", func(t *testing.T) {
		acc := newAccount(0, 0)
		cent := decimal.RequireFromString("0.10")
		for range 1000 {
			_, err := acc.ApplyDelta(cent)
			require.NoError(t, err)
		}
		assert.Equal(t, "100", acc.Balance.String())
	})
}

func TestHasCentPrecision(t *testing.T) {
	t.Parallel()
	assert.True(t, domainaccount.HasCentPrecision(decimal.RequireFromString("10")))
	assert.True(t, domainaccount.HasCentPrecision(decimal.RequireFromString("0.01")))
	assert.True(t, domainaccount.HasCentPrecision(decimal.RequireFromString("12.500")))
	assert.False(t, domainaccount.HasCentPrecision(decimal.RequireFromString("0.004")))
	assert.False(t, domainaccount.HasCentPrecision(decimal.RequireFromString("-1.001")))
}

func TestValidateSettings_Precision(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithUserID(uuid.New()).Build()
	require.NoError(t, err)
	require.NoError(t, acc.ValidateSettings())

	acc.OverdraftLimit = decimal.RequireFromString("25.125")
	assert.ErrorIs(t, acc.ValidateSettings(), domainaccount.ErrAmountPrecision)
}

func TestCanClose(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithUserID(uuid.New()).Build()
	require.NoError(t, err)
	assert.NoError(t, acc.CanClose())

	acc.Balance = decimal.NewFromInt(1)
	assert.ErrorIs(t, acc.CanClose(), domainaccount.ErrNonZeroBalance)

	acc.Balance = decimal.NewFromInt(-1)
	assert.ErrorIs(t, acc.CanClose(), domainaccount.ErrNonZeroBalance)
}

func TestValidateTransfer(t *testing.T) {
	t.Parallel()
	src, err := domainaccount.New().WithUserID(uuid.New()).Build()
	require.NoError(t, err)
	dst, err := domainaccount.New().WithUserID(uuid.New()).Build()
	require.NoError(t, err)
	eur, err := domainaccount.New().WithUserID(uuid.New()).WithCurrency("EUR").Build()
	require.NoError(t, err)

	amount := decimal.NewFromInt(10)
	assert.NoError(t, src.ValidateTransfer(dst, amount))
	assert.ErrorIs(t, src.ValidateTransfer(nil, amount), domainaccount.ErrAccountNotFound)
	assert.ErrorIs(t, src.ValidateTransfer(src, amount), domainaccount.ErrCannotTransferToSameAccount)
	assert.ErrorIs(t, src.ValidateTransfer(dst, decimal.Zero), domainaccount.ErrTransactionAmountMustBePositive)
	assert.ErrorIs(t, src.ValidateTransfer(eur, amount), domainaccount.ErrCurrencyMismatch)

	dst.Status = domainaccount.StatusFrozen
	assert.ErrorIs(t, src.ValidateTransfer(dst, amount), domainaccount.ErrAccountNotActive)
}

func TestTransactionLifecycle(t *testing.T) {
	t.Parallel()
	accountID := uuid.New()

	tx, err := domainaccount.NewTransaction(accountID, domainaccount.TypeDeposit, decimal.NewFromInt(10), "", nil, "")
	require.NoError(t, err)
	assert.Equal(t, domainaccount.StatusPending, tx.Status)
	assert.Equal(t, domainaccount.InitiatorUser, tx.InitiatedBy)
	assert.Equal(t, domainaccount.DefaultCurrency, tx.Currency)

	require.NoError(t, tx.Complete())
	assert.Equal(t, domainaccount.StatusCompleted, tx.Status)
	assert.ErrorIs(t, tx.Fail(), domainaccount.ErrInvalidStatusTransition)
	assert.ErrorIs(t, tx.Complete(), domainaccount.ErrInvalidStatusTransition)
	assert.Equal(t, domainaccount.StatusCompleted, tx.Status)
}

func TestNewTransaction_Validation(t *testing.T) {
	t.Parallel()
	accountID := uuid.New()
	other := uuid.New()

	_, err := domainaccount.NewTransaction(accountID, domainaccount.TypeDeposit, decimal.NewFromInt(-10), "", nil, "")
	assert.ErrorIs(t, err, domainaccount.ErrTransactionAmountMustBePositive)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domainaccount.NewTransaction(accountID, domainaccount.TypeDeposit, decimal.RequireFromString("0.004"), "", nil, "")
	assert.ErrorIs(t, err, domainaccount.ErrAmountPrecision)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domainaccount.NewTransaction(accountID, "refund", decimal.NewFromInt(10), "", nil, "")
	assert.ErrorIs(t, err, domainaccount.ErrInvalidTransactionType)

	_, err = domainaccount.NewTransaction(accountID, domainaccount.TypeTransfer, decimal.NewFromInt(10), "", nil, "")
	assert.ErrorIs(t, err, domainaccount.ErrRelatedAccountRequired)

	_, err = domainaccount.NewTransaction(accountID, domainaccount.TypeTransfer, decimal.NewFromInt(10), "", &accountID, "")
	assert.ErrorIs(t, err, domainaccount.ErrCannotTransferToSameAccount)

	tx, err := domainaccount.NewTransaction(accountID, domainaccount.TypeTransfer, decimal.NewFromInt(10), "USD", &other, domainaccount.InitiatorAdmin)
	require.NoError(t, err)
	src, dst := tx.Deltas()
	assert.Equal(t, "-10", src.String())
	assert.Equal(t, "10", dst.String())

	dep, err := domainaccount.NewTransaction(accountID, domainaccount.TypeDeposit, decimal.NewFromInt(10), "USD", &other, "")
	require.NoError(t, err)
	assert.Nil(t, dep.RelatedAccountID)
}

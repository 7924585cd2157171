package account_test

import (
	"context"
	"testing"

	"github.com/amirasaad/bankapi/pkg/domain"
	domainaccount "github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Open(t *testing.T) {
	t.Parallel()
	env := testutils.NewEnv(t)
	owner := env.CreateUser(t, user.RoleUser)
	ctx := context.Background()

	acct, err := env.AccountService.Open(ctx, dto.AccountOpen{UserID: owner.ID, AccountType: "savings", Nickname: "rainy day"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, acct.UserID)
	assert.Equal(t, "USD", acct.Currency)
	assert.Equal(t, "active", acct.Status)
	assert.Equal(t, "rainy day", acct.Nickname)
	assert.Len(t, acct.AccountNumber, 10)
	assert.True(t, acct.Balance.IsZero())

	_, err = env.AccountService.Open(ctx, dto.AccountOpen{UserID: uuid.New(), AccountType: "savings"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = env.AccountService.Open(ctx, dto.AccountOpen{UserID: owner.ID, AccountType: "crypto"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Ownership(t *testing.T) {
	t.Parallel()
	env := testutils.NewEnv(t)
	owner := env.CreateUser(t, user.RoleUser)
	other := env.CreateUser(t, user.RoleUser)
	admin := env.CreateUser(t, user.RoleAdmin)
	acct := env.OpenAccount(t, owner.ID, "0")
	ctx := context.Background()

	got, err := env.AccountService.Get(ctx, testutils.Identity(owner), acct.ID)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)

	_, err = env.AccountService.Get(ctx, testutils.Identity(other), acct.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.AccountService.Get(ctx, testutils.Identity(admin), acct.ID)
	assert.NoError(t, err)

	list, err := env.AccountService.ListByUser(ctx, testutils.Identity(owner), owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.AccountService.ListByUser(ctx, testutils.Identity(other), owner.ID)
	assert.ErrorIs(t, err, domainaccount.ErrNotOwner)

	balance, err := env.AccountService.Balance(ctx, testutils.Identity(owner), acct.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestService_Update(t *testing.T) {
	t.Parallel()
	env := testutils.NewEnv(t)
	owner := env.CreateUser(t, user.RoleUser)
	acct := env.OpenAccount(t, owner.ID, "20")
	ctx := context.Background()

	nickname := "bills"
	frozen := "frozen"
	out, err := env.AccountService.Update(ctx, acct.ID, dto.AccountUpdate{Nickname: &nickname, Status: &frozen})
	require.NoError(t, err)
	assert.Equal(t, "bills", out.Nickname)
	assert.Equal(t, "frozen", out.Status)
	assert.True(t, out.Balance.Equal(amount("20")))

	rate := amount("3")
	_, err = env.AccountService.Update(ctx, acct.ID, dto.AccountUpdate{InterestRate: &rate})
	assert.ErrorIs(t, err, domainaccount.ErrInvalidInterestRate)

	_, err = env.AccountService.Update(ctx, uuid.New(), dto.AccountUpdate{Nickname: &nickname})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Remove(t *testing.T) {
	t.Parallel()
	env := testutils.NewEnv(t)
	owner := env.CreateUser(t, user.RoleUser)
	funded := env.OpenAccount(t, owner.ID, "5")
	empty := env.OpenAccount(t, owner.ID, "0")
	ctx := context.Background()

	assert.ErrorIs(t, env.AccountService.Remove(ctx, funded.ID), domainaccount.ErrNonZeroBalance)
	assert.True(t, env.Balance(t, funded.ID).Equal(amount("5")))

	require.NoError(t, env.AccountService.Remove(ctx, empty.ID))
	_, err := env.AccountService.Get(ctx, testutils.Identity(owner), empty.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, env.AccountService.Remove(ctx, empty.ID), domain.ErrNotFound)
}

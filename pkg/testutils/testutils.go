// Package testutils builds a complete service graph on an in-memory
// database for tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/bankapi/infra"
	"github.com/amirasaad/bankapi/internal/database"
	"github.com/amirasaad/bankapi/pkg/app"
	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain password of every user created by CreateUser.
const Password = "password123"

var fastHashing sync.Once

// Config returns a valid configuration for tests.
func Config() *config.App {
	return &config.App{
		Env:             "test",
		DefaultCurrency: "USD",
		Server:          &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:             &config.Log{Format: "text"},
		DB:              &config.DB{},
		Auth: &config.Auth{Jwt: &config.Jwt{
			AccessSecret:  "test-access-secret-0123456789",
			AccessExpiry:  15 * time.Minute,
			RefreshSecret: "test-refresh-secret-9876543210",
			RefreshExpiry: 7 * 24 * time.Hour,
			Issuer:        "bankapi",
		}},
		Redis:     &config.Redis{KeyPrefix: "bankapi:test:"},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Metrics:   &config.Metrics{Namespace: "bankapi_test"},
	}
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Env is a wired application on a private database.
type Env struct {
	*app.App
	DB  *gorm.DB
	UoW *infra.UoW
}

// NewEnv migrates a fresh in-memory database and builds every service on it.
func NewEnv(tb testing.TB) *Env {
	tb.Helper()
	fastHashing.Do(func() { utils.PasswordCost = bcrypt.MinCost })
	db := database.New(tb)
	uow := infra.NewUoW(db)
	a := app.New(&app.Deps{Uow: uow, Logger: Logger()}, Config())
	return &Env{App: a, DB: db, UoW: uow}
}

// CreateUser stores an active user with the given role and Password.
func (e *Env) CreateUser(tb testing.TB, role user.Role) *dto.UserRead {
	tb.Helper()
	short := uuid.NewString()[:8]
	u, err := e.UserService.Create(context.Background(), dto.UserSignup{
		FirstName: "Test",
		LastName:  short,
		Email:     fmt.Sprintf("test_%s@example.com", short),
		Password:  Password,
		Role:      string(role),
	})
	if err != nil {
		tb.Fatalf("create user: %v", err)
	}
	return u
}

// OpenAccount opens a USD current account for ownerID and funds it with
// balance through the ledger.
func (e *Env) OpenAccount(tb testing.TB, ownerID uuid.UUID, balance string) *dto.AccountRead {
	tb.Helper()
	return e.OpenAccountWith(tb, dto.AccountOpen{UserID: ownerID, AccountType: "current"}, balance)
}

// OpenAccountWith opens an account from in and funds it with balance.
func (e *Env) OpenAccountWith(tb testing.TB, in dto.AccountOpen, balance string) *dto.AccountRead {
	tb.Helper()
	ctx := context.Background()
	acct, err := e.AccountService.Open(ctx, in)
	if err != nil {
		tb.Fatalf("open account: %v", err)
	}
	amount := decimal.RequireFromString(balance)
	if amount.IsZero() {
		return acct
	}
	acct, err = e.Ledger.UpdateBalance(ctx, acct.ID, amount)
	if err != nil {
		tb.Fatalf("fund account: %v", err)
	}
	return acct
}

// Balance reads the stored balance of an account.
func (e *Env) Balance(tb testing.TB, accountID uuid.UUID) decimal.Decimal {
	tb.Helper()
	repo, err := e.UoW.AccountRepository()
	if err != nil {
		tb.Fatalf("account repository: %v", err)
	}
	acct, err := repo.Get(context.Background(), accountID)
	if err != nil {
		tb.Fatalf("get account: %v", err)
	}
	return acct.Balance
}

// Identity returns the principal of u as the token guard would build it.
func Identity(u *dto.UserRead) *user.Identity {
	return &user.Identity{ID: u.ID, Email: u.Email, Roles: user.NewRoles(user.Role(u.Role))}
}

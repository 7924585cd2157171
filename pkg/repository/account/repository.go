package account

import (
	"context"

	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for account data access operations with
// support for CQRS (Command/Query Responsibility Segregation).
type Repository interface {
	// Create inserts a new account record from a DTO.
	Create(ctx context.Context, create dto.AccountCreate) error

	// Update applies administrative edits. It never touches the balance.
	Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error

	// Get retrieves an account by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// GetForUpdate retrieves an account and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// UpdateBalance writes only the balance column.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// Delete deletes an account by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves accounts with pagination support.
	List(ctx context.Context, page, pageSize int) ([]*dto.AccountRead, error)

	// ListByUser lists all accounts for a given user as read-optimized DTOs.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)

	// ExistsByUser reports whether the user owns at least one account.
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

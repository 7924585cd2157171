package transaction

import (
	"context"

	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction data
// access operations with support for CQRS (Command/Query Responsibility Segregation).
type Repository interface {
	// Create inserts a new transaction record from a DTO.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Update updates the specified fields of a transaction by its ID.
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error

	// Get retrieves a transaction by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// List retrieves transactions, newest first, with pagination support.
	List(ctx context.Context, page, pageSize int) ([]*dto.TransactionRead, error)

	// ListByAccount lists all transactions for a given account, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)

	// Delete deletes a transaction by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

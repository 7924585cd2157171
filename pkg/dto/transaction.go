package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized DTO for transaction queries and API responses.
type TransactionRead struct {
	ID               uuid.UUID       `json:"transactionId"`
	AccountID        uuid.UUID       `json:"accountId"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	RelatedAccountID *uuid.UUID      `json:"relatedAccountId,omitempty"`
	TransactionFee   decimal.Decimal `json:"transactionFee"`
	Reference        string          `json:"reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	InitiatedBy      string          `json:"initiatedBy"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// TransactionCreate is a DTO for persisting a new transaction.
type TransactionCreate struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	Type             string
	Amount           decimal.Decimal
	Currency         string
	Status           string
	RelatedAccountID *uuid.UUID
	TransactionFee   decimal.Decimal
	Reference        string
	Notes            string
	InitiatedBy      string
}

// TransactionUpdate is a DTO for updating one or more fields of a transaction.
type TransactionUpdate struct {
	Status    *string `json:"-"`
	Reference *string `json:"reference,omitempty" validate:"omitempty,max=64"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=255"`
}

// TransactionCommand is the input of the transaction processor.
type TransactionCommand struct {
	AccountID        uuid.UUID
	Type             string
	Amount           decimal.Decimal
	Currency         string
	RelatedAccountID *uuid.UUID
	Reference        string
	Notes            string
	// ActorID is the authenticated user starting the transaction. Non-admin
	// actors must own the source account.
	ActorID    uuid.UUID
	ActorRoles []string
}

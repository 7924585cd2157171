package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the request body of POST /transactions.
type CreateTransactionRequest struct {
	AccountID        uuid.UUID       `json:"accountId" validate:"required"`
	Type             string          `json:"type" validate:"required,oneof=deposit withdrawal transfer"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	RelatedAccountID *uuid.UUID      `json:"relatedAccountId"`
	Reference        string          `json:"reference" validate:"max=64"`
	Notes            string          `json:"notes" validate:"max=255"`
}

package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositRequest represents the request body for depositing funds into an account.
type DepositRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	Reference string          `json:"reference" validate:"max=64"`
	Notes     string          `json:"notes" validate:"max=255"`
}

// WithdrawRequest represents the request body for withdrawing funds from an account.
type WithdrawRequest = DepositRequest

// TransferRequest represents the request body for transferring funds between accounts.
type TransferRequest struct {
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	DestinationAccountID uuid.UUID       `json:"destinationAccountId" validate:"required"`
	Reference            string          `json:"reference" validate:"max=64"`
	Notes                string          `json:"notes" validate:"max=255"`
}

// BalanceResponse is returned by the balance endpoint.
type BalanceResponse struct {
	AccountID uuid.UUID       `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID             uuid.UUID        `json:"accountId"`
	UserID         uuid.UUID        `json:"userId"`
	AccountNumber  string           `json:"accountNumber"`
	AccountType    string           `json:"accountType"`
	Balance        decimal.Decimal  `json:"balance"`
	Currency       string           `json:"currency"`
	Status         string           `json:"status"`
	OverdraftLimit decimal.Decimal  `json:"overdraftLimit"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	BranchCode     string           `json:"branchCode,omitempty"`
	Nickname       string           `json:"accountNickname,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// AccountCreate is a DTO for persisting a new account.
type AccountCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	AccountNumber  string
	AccountType    string
	Balance        decimal.Decimal
	Currency       string
	Status         string
	OverdraftLimit decimal.Decimal
	InterestRate   *decimal.Decimal
	BranchCode     string
	Nickname       string
}

// AccountOpen is the command for opening an account for a user.
type AccountOpen struct {
	UserID         uuid.UUID        `json:"userId" validate:"required"`
	AccountType    string           `json:"accountType" validate:"required,oneof=savings checking current"`
	Currency       string           `json:"currency" validate:"omitempty,len=3,uppercase,alpha"`
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	BranchCode     string           `json:"branchCode" validate:"omitempty,max=32"`
	Nickname       string           `json:"accountNickname" validate:"omitempty,max=64"`
}

// AccountUpdate is a DTO for administrative edits of an account. Balance is
// deliberately absent: it only changes through the ledger.
type AccountUpdate struct {
	AccountType    *string          `json:"accountType,omitempty" validate:"omitempty,oneof=savings checking current"`
	Status         *string          `json:"status,omitempty" validate:"omitempty,oneof=active closed frozen"`
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	BranchCode     *string          `json:"branchCode,omitempty" validate:"omitempty,max=32"`
	Nickname       *string          `json:"accountNickname,omitempty" validate:"omitempty,max=64"`
}

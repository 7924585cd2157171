package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName   string     `gorm:"size:100;not null"`
	LastName    string     `gorm:"size:100;not null"`
	Email       string     `gorm:"uniqueIndex;not null;size:255"`
	Password    string     `gorm:"not null"`
	PhoneNumber string     `gorm:"size:32"`
	Address     string     `gorm:"size:255"`
	Role        string     `gorm:"type:varchar(16);not null;default:'user'"`
	Status      string     `gorm:"type:varchar(16);not null;default:'active'"`
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Account represents an account record in the database.
type Account struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	AccountNumber  string           `gorm:"type:varchar(10);uniqueIndex;not null"`
	AccountType    string           `gorm:"type:varchar(16);not null;default:'current'"`
	Balance        decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string           `gorm:"type:varchar(3);not null;default:'USD'"`
	Status         string           `gorm:"type:varchar(16);not null;default:'active'"`
	OverdraftLimit decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	InterestRate   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	BranchCode     string           `gorm:"size:32"`
	Nickname       string           `gorm:"size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a persisted balance operation.
type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type             string          `gorm:"type:varchar(16);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency         string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Status           string          `gorm:"type:varchar(16);not null;default:'pending'"`
	RelatedAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	TransactionFee   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Reference        string          `gorm:"size:64"`
	Notes            string          `gorm:"size:255"`
	InitiatedBy      string          `gorm:"type:varchar(16);not null;default:'user'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// All returns every model in migration order.
func All() []any {
	return []any{&User{}, &Account{}, &Transaction{}}
}

package account

import (
	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/dto"
)

// ToDomain rebuilds the domain account from its read model.
func ToDomain(r *dto.AccountRead) *account.Account {
	return &account.Account{
		ID:             r.ID,
		UserID:         r.UserID,
		AccountNumber:  r.AccountNumber,
		Type:           account.Type(r.AccountType),
		Balance:        r.Balance,
		Currency:       r.Currency,
		Status:         account.Status(r.Status),
		OverdraftLimit: r.OverdraftLimit,
		InterestRate:   r.InterestRate,
		BranchCode:     r.BranchCode,
		Nickname:       r.Nickname,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toCreateDTO(a *account.Account) dto.AccountCreate {
	return dto.AccountCreate{
		ID:             a.ID,
		UserID:         a.UserID,
		AccountNumber:  a.AccountNumber,
		AccountType:    string(a.Type),
		Balance:        a.Balance,
		Currency:       a.Currency,
		Status:         string(a.Status),
		OverdraftLimit: a.OverdraftLimit,
		InterestRate:   a.InterestRate,
		BranchCode:     a.BranchCode,
		Nickname:       a.Nickname,
	}
}

package account

import (
	"context"

	infrarepo "github.com/amirasaad/bankapi/infra/repository"
	"github.com/amirasaad/bankapi/infra/repository/model"
	domainaccount "github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/dto"
	repo "github.com/amirasaad/bankapi/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a new CQRS-style account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct := mapCreateDTOToModel(create)
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&acct).Error
	})
}

// Update implements account.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Updates(updates).Error
	})
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetForUpdate implements account.Repository. Dialects without row locks
// (sqlite) ignore the locking clause.
func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repository) first(db *gorm.DB, id uuid.UUID) (*dto.AccountRead, error) {
	var acct model.Account
	err := infrarepo.WrapNotFound(func() error {
		return db.First(&acct, "id = ?", id).Error
	}, domainaccount.ErrAccountNotFound)
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&acct), nil
}

// UpdateBalance implements account.Repository.
func (r *repository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return infrarepo.WrapError(func() error {
		res := r.db.WithContext(ctx).Model(&model.Account{}).
			Where("id = ?", id).
			UpdateColumn("balance", balance)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainaccount.ErrAccountNotFound
		}
		return nil
	})
}

// Delete implements account.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return infrarepo.WrapError(func() error {
		res := r.db.WithContext(ctx).Delete(&model.Account{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainaccount.ErrAccountNotFound
		}
		return nil
	})
}

// List implements account.Repository.
func (r *repository) List(ctx context.Context, page, pageSize int) ([]*dto.AccountRead, error) {
	var accts []model.Account
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Scopes(infrarepo.Paginate(page, pageSize)).
			Order("created_at").
			Find(&accts).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToDTO(accts), nil
}

// ListByUser implements account.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []model.Account
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&accts).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToDTO(accts), nil
}

// ExistsByUser implements account.Repository.
func (r *repository) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.Account{}).Where("user_id = ?", userID).Count(&count).Error
	})
	return count > 0, err
}

// mapCreateDTOToModel maps AccountCreate DTO to GORM model.
func mapCreateDTOToModel(create dto.AccountCreate) model.Account {
	return model.Account{
		ID:             create.ID,
		UserID:         create.UserID,
		AccountNumber:  create.AccountNumber,
		AccountType:    create.AccountType,
		Balance:        create.Balance,
		Currency:       create.Currency,
		Status:         create.Status,
		OverdraftLimit: create.OverdraftLimit,
		InterestRate:   create.InterestRate,
		BranchCode:     create.BranchCode,
		Nickname:       create.Nickname,
	}
}

// mapUpdateDTOToModel maps AccountUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.AccountUpdate) map[string]any {
	updates := make(map[string]any)
	if update.AccountType != nil {
		updates["account_type"] = *update.AccountType
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.OverdraftLimit != nil {
		updates["overdraft_limit"] = *update.OverdraftLimit
	}
	if update.InterestRate != nil {
		updates["interest_rate"] = *update.InterestRate
	}
	if update.BranchCode != nil {
		updates["branch_code"] = *update.BranchCode
	}
	if update.Nickname != nil {
		updates["nickname"] = *update.Nickname
	}
	return updates
}

// mapModelToDTO maps a GORM model to a read-optimized DTO.
func mapModelToDTO(acct *model.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:             acct.ID,
		UserID:         acct.UserID,
		AccountNumber:  acct.AccountNumber,
		AccountType:    acct.AccountType,
		Balance:        acct.Balance,
		Currency:       acct.Currency,
		Status:         acct.Status,
		OverdraftLimit: acct.OverdraftLimit,
		InterestRate:   acct.InterestRate,
		BranchCode:     acct.BranchCode,
		Nickname:       acct.Nickname,
		CreatedAt:      acct.CreatedAt,
		UpdatedAt:      acct.UpdatedAt,
	}
}

func mapModelsToDTO(accts []model.Account) []*dto.AccountRead {
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result
}

var _ repo.Repository = (*repository)(nil)

package transaction

import (
	"context"

	infrarepo "github.com/amirasaad/bankapi/infra/repository"
	"github.com/amirasaad/bankapi/infra/repository/model"
	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/dto"
	repo "github.com/amirasaad/bankapi/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a new CQRS-style transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(
	ctx context.Context,
	create dto.TransactionCreate,
) error {
	tx := mapCreateDTOToModel(create)
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&tx).Error
	})
}

// Update implements transaction.Repository.
func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.TransactionUpdate,
) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(
			ctx,
		).Model(
			&model.Transaction{},
		).Where(
			"id = ?",
			id,
		).Updates(
			updates,
		).Error
	})
}

// Get implements transaction.Repository.
func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	var tx model.Transaction
	err := infrarepo.WrapNotFound(func() error {
		return r.db.WithContext(ctx).First(&tx, "id = ?", id).Error
	}, account.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}
	return mapModelToReadDTO(&tx), nil
}

// List implements transaction.Repository.
func (r *repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.TransactionRead, error) {
	var txs []model.Transaction
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(
			ctx,
		).Scopes(
			infrarepo.Paginate(page, pageSize),
		).Order(
			"created_at DESC",
		).Find(
			&txs,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToReadDTO(txs), nil
}

// ListByAccount implements transaction.Repository. Transfers received by the
// account are included.
func (r *repository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	var txs []model.Transaction
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(
			ctx,
		).Where(
			"account_id = ? OR related_account_id = ?",
			accountID,
			accountID,
		).Order(
			"created_at DESC",
		).Find(
			&txs,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToReadDTO(txs), nil
}

// Delete implements transaction.Repository.
func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.WrapError(func() error {
		res := r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return account.ErrTransactionNotFound
		}
		return nil
	})
}

// --- Mappers ---

func mapCreateDTOToModel(create dto.TransactionCreate) model.Transaction {
	return model.Transaction{
		ID:               create.ID,
		AccountID:        create.AccountID,
		Type:             create.Type,
		Amount:           create.Amount,
		Currency:         create.Currency,
		Status:           create.Status,
		RelatedAccountID: create.RelatedAccountID,
		TransactionFee:   create.TransactionFee,
		Reference:        create.Reference,
		Notes:            create.Notes,
		InitiatedBy:      create.InitiatedBy,
	}
}

func mapUpdateDTOToModel(update dto.TransactionUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.Reference != nil {
		updates["reference"] = *update.Reference
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	return updates
}

func mapModelToReadDTO(tx *model.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:               tx.ID,
		AccountID:        tx.AccountID,
		Type:             tx.Type,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Status:           tx.Status,
		RelatedAccountID: tx.RelatedAccountID,
		TransactionFee:   tx.TransactionFee,
		Reference:        tx.Reference,
		Notes:            tx.Notes,
		InitiatedBy:      tx.InitiatedBy,
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}
}

func mapModelsToReadDTO(txs []model.Transaction) []*dto.TransactionRead {
	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToReadDTO(&txs[i]))
	}
	return result
}

var _ repo.Repository = (*repository)(nil)

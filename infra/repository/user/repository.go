package user

import (
	"context"
	"strings"

	infrarepo "github.com/amirasaad/bankapi/infra/repository"
	"github.com/amirasaad/bankapi/infra/repository/model"
	domainuser "github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a user repository bound to db, which may be a transaction.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	u := &model.User{
		ID:          create.ID,
		FirstName:   create.FirstName,
		LastName:    create.LastName,
		Email:       strings.ToLower(create.Email),
		Password:    create.Password,
		PhoneNumber: create.PhoneNumber,
		Address:     create.Address,
		Role:        create.Role,
		Status:      create.Status,
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(u).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	uu *dto.UserUpdate,
) error {
	updates := make(map[string]any)

	// Only include non-nil fields in the update
	if uu.FirstName != nil {
		updates["first_name"] = *uu.FirstName
	}
	if uu.LastName != nil {
		updates["last_name"] = *uu.LastName
	}
	if uu.Email != nil {
		updates["email"] = strings.ToLower(*uu.Email)
	}
	if uu.Password != nil {
		updates["password"] = *uu.Password
	}
	if uu.PhoneNumber != nil {
		updates["phone_number"] = *uu.PhoneNumber
	}
	if uu.Address != nil {
		updates["address"] = *uu.Address
	}
	if uu.Role != nil {
		updates["role"] = *uu.Role
	}
	if uu.Status != nil {
		updates["status"] = *uu.Status
	}
	if uu.LastLoginAt != nil {
		updates["last_login_at"] = *uu.LastLoginAt
	}

	if len(updates) == 0 {
		return nil
	}

	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.User{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	var u model.User
	err := infrarepo.WrapNotFound(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	}, domainuser.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	var u model.User
	err := infrarepo.WrapNotFound(func() error {
		return r.db.WithContext(ctx).
			Where("email = ?", strings.ToLower(email)).
			First(&u).Error
	}, domainuser.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.WrapError(func() error {
		res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainuser.ErrUserNotFound
		}
		return nil
	})
}

func (r *repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.UserRead, error) {
	var users []model.User
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Scopes(infrarepo.Paginate(page, pageSize)).
			Order("created_at").
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

func (r *repository) Exists(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {
	var count int64
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	})
	return count > 0, err
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.User{}).
			Where("email = ?", strings.ToLower(email)).
			Count(&count).Error
	})
	return count > 0, err
}

func mapModelToDTO(u *model.User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		HashedPassword: u.Password,
		PhoneNumber:    u.PhoneNumber,
		Address:        u.Address,
		Role:           u.Role,
		Status:         u.Status,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)

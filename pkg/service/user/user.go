// Package user provides business logic for user management operations.
package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/repository"
	"github.com/amirasaad/bankapi/pkg/utils"
	"github.com/google/uuid"
)

// Service provides business logic for user operations including creation, updates, and deletion.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger.With("service", "user"),
	}
}

// Create registers a new user. An empty role means RoleUser.
func (s *Service) Create(
	ctx context.Context,
	in dto.UserSignup,
) (out *dto.UserRead, err error) {
	log := s.logger.With("email", in.Email)
	u, err := user.New(in.FirstName, in.LastName, in.Email, in.Password, user.Role(in.Role))
	if err != nil {
		return nil, err
	}
	u.PhoneNumber = in.PhoneNumber
	u.Address = in.Address

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrEmailTaken
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:          u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       u.Email,
			Password:    u.Password,
			PhoneNumber: u.PhoneNumber,
			Address:     u.Address,
			Role:        string(u.Role),
			Status:      string(u.Status),
		}); err != nil {
			return err
		}
		out, err = repo.Get(ctx, u.ID)
		return err
	})
	if err != nil {
		log.Warn("Create user failed", "error", err)
		return nil, err
	}
	log.Info("User created", "userID", out.ID, "role", out.Role)
	return out, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// GetByEmail retrieves a user by email.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetByEmail(ctx, strings.TrimSpace(email))
}

// List returns one page of users.
func (s *Service) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, page, pageSize)
}

// Update changes the given fields of a user. A new password is hashed and a
// new email must not belong to another user.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	in *dto.UserUpdate,
) (out *dto.UserRead, err error) {
	log := s.logger.With("userID", id)
	update := *in
	if update.Role != nil && !user.Role(*update.Role).Valid() {
		return nil, user.ErrInvalidRole
	}
	if update.Status != nil && !user.Status(*update.Status).Valid() {
		return nil, user.ErrInvalidStatus
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if !utils.IsEmail(email) {
			return nil, domain.NewError(domain.ErrValidation, "a valid email is required")
		}
		update.Email = &email
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, domain.NewError(domain.ErrValidation, "password cannot be empty")
		}
		hashed, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		update.Password = &hashed
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if update.Email != nil && *update.Email != current.Email {
			taken, err := repo.ExistsByEmail(ctx, *update.Email)
			if err != nil {
				return err
			}
			if taken {
				return user.ErrEmailTaken
			}
		}
		if err := repo.Update(ctx, id, &update); err != nil {
			return err
		}
		out, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Warn("Update user failed", "error", err)
		return nil, err
	}
	log.Info("User updated")
	return out, nil
}

// Delete removes a user that owns no accounts.
func (s *Service) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	log := s.logger.With("userID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		owns, err := accounts.ExistsByUser(ctx, id)
		if err != nil {
			return err
		}
		if owns {
			return user.ErrUserHasAccounts
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.Warn("Delete user failed", "error", err)
		return err
	}
	log.Info("User deleted")
	return nil
}

// RecordLogin stores the time of a successful login.
func (s *Service) RecordLogin(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) error {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return err
	}
	at = at.UTC()
	return repo.Update(ctx, id, &dto.UserUpdate{LastLoginAt: &at})
}

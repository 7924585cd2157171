package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/metrics"
	usersvc "github.com/amirasaad/bankapi/pkg/service/user"
	"github.com/amirasaad/bankapi/pkg/utils"
	"github.com/google/uuid"
)

// dummyHash is compared against when the email is unknown so that both
// failure paths cost one bcrypt comparison.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service authenticates users and hands out token pairs.
type Service struct {
	users   *usersvc.Service
	tokens  *TokenService
	metrics metrics.Collector
	logger  *slog.Logger
}

// New creates an auth Service. A nil collector disables metrics.
func New(
	users *usersvc.Service,
	tokens *TokenService,
	collector metrics.Collector,
	logger *slog.Logger,
) *Service {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &Service{
		users:   users,
		tokens:  tokens,
		metrics: collector,
		logger:  logger.With("service", "auth"),
	}
}

// Tokens returns the token service used for signing.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Register creates a user with the user role and logs them in.
func (s *Service) Register(
	ctx context.Context,
	in dto.UserSignup,
) (*dto.UserRead, *TokenPair, error) {
	in.Role = string(user.RoleUser)
	u, err := s.users.Create(ctx, in)
	if err != nil {
		s.metrics.RecordAuth("register", false)
		return nil, nil, err
	}
	pair, err := s.tokens.Issue(identityOf(u))
	if err != nil {
		return nil, nil, err
	}
	s.metrics.RecordAuth("register", true)
	return u, pair, nil
}

// Login checks the credentials of an active user. Unknown emails, wrong
// passwords and inactive users all fail with user.ErrUserUnauthorized and no
// token is issued.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (u *dto.UserRead, pair *TokenPair, err error) {
	log := s.logger.With("context", "Login", "email", email)
	log.Debug("Login called")
	defer func() {
		s.metrics.RecordAuth("login", err == nil)
	}()

	u, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error("User lookup failed", "error", err)
			return nil, nil, err
		}
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Warn("Login failed", "reason", "unknown email")
		return nil, nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Warn("Login failed", "reason", "password mismatch", "userID", u.ID)
		return nil, nil, user.ErrUserUnauthorized
	}
	if user.Status(u.Status) != user.StatusActive {
		log.Warn("Login failed", "reason", "user not active", "userID", u.ID, "status", u.Status)
		return nil, nil, user.ErrUserUnauthorized
	}

	pair, err = s.tokens.Issue(identityOf(u))
	if err != nil {
		log.Error("Issue tokens failed", "error", err)
		return nil, nil, err
	}
	now := time.Now()
	if err := s.users.RecordLogin(ctx, u.ID, now); err != nil {
		log.Warn("Record login time failed", "error", err)
	} else {
		at := now.UTC()
		u.LastLoginAt = &at
	}
	log.Info("Login successful", "userID", u.ID)
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. Roles are re-read
// from the store so that role changes take effect on refresh.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (pair *TokenPair, err error) {
	log := s.logger.With("context", "Refresh")
	defer func() {
		s.metrics.RecordAuth("refresh", err == nil)
	}()

	id, err := s.tokens.Verify(refreshToken, RefreshToken)
	if err != nil {
		log.Warn("Refresh token rejected", "error", err)
		return nil, ErrInvalidToken
	}
	u, err := s.users.Get(ctx, id.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.Status(u.Status) != user.StatusActive {
		log.Warn("Refresh rejected", "reason", "user not active", "userID", u.ID)
		return nil, user.ErrUserUnauthorized
	}
	return s.tokens.Issue(identityOf(u))
}

// Me returns the stored user behind an identity.
func (s *Service) Me(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	return s.users.Get(ctx, id)
}

func identityOf(u *dto.UserRead) *user.Identity {
	return &user.Identity{
		ID:    u.ID,
		Email: u.Email,
		Roles: user.NewRoles(user.Role(u.Role)),
	}
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification. The
// cause is wrapped for logging but never shown to clients.
var ErrInvalidToken = domain.NewError(domain.ErrUnauthorized, "invalid or expired token")

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims is the payload of both token kinds. Roles is canonical; LegacyRole
// carries the single "role" claim of older tokens and is only read.
type Claims struct {
	Email      string     `json:"email,omitempty"`
	Roles      user.Roles `json:"roles,omitempty"`
	LegacyRole user.Roles `json:"role,omitempty"`
	Kind       TokenKind  `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is what login and refresh hand out.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	TokenType        string    `json:"tokenType"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// TokenService signs and verifies HS256 tokens.
type TokenService struct {
	cfg *config.Jwt
	now func() time.Time
}

// NewTokenService creates a TokenService from the JWT settings.
func NewTokenService(cfg *config.Jwt) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

func (s *TokenService) secret(kind TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case AccessToken:
		return []byte(s.cfg.AccessSecret), s.cfg.AccessExpiry, nil
	case RefreshToken:
		return []byte(s.cfg.RefreshSecret), s.cfg.RefreshExpiry, nil
	}
	return nil, 0, fmt.Errorf("unknown token kind %q", kind)
}

// AccessSecret is the key the HTTP middleware verifies access tokens with.
func (s *TokenService) AccessSecret() []byte {
	return []byte(s.cfg.AccessSecret)
}

// Issue signs an access and a refresh token for id.
func (s *TokenService) Issue(id *user.Identity) (*TokenPair, error) {
	if id == nil || id.ID == uuid.Nil {
		return nil, errors.New("issue token: identity is required")
	}
	now := s.now()
	access, accessExp, err := s.sign(id, AccessToken, now)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.sign(id, RefreshToken, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        "Bearer",
		ExpiresAt:        accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *TokenService) sign(id *user.Identity, kind TokenKind, now time.Time) (string, time.Time, error) {
	key, ttl, err := s.secret(kind)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := now.Add(ttl)
	claims := Claims{
		Email: id.Email,
		Roles: user.NewRoles(id.Roles...),
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm, expiry and kind of raw and returns the
// identity it carries.
func (s *TokenService) Verify(raw string, kind TokenKind) (*user.Identity, error) {
	key, _, err := s.secret(kind)
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return s.IdentityFromClaims(claims, kind)
}

// IdentityFromClaims validates already parsed claims for the expected kind.
func (s *TokenService) IdentityFromClaims(claims *Claims, kind TokenKind) (*user.Identity, error) {
	if claims == nil {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, kind, claims.Kind)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: token has no expiry", ErrInvalidToken)
	}
	if s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject: %w", ErrInvalidToken, err)
	}
	roles := claims.Roles
	if len(roles) == 0 {
		roles = claims.LegacyRole
	}
	return &user.Identity{ID: id, Email: claims.Email, Roles: user.NewRoles(roles...)}, nil
}

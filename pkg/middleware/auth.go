// Package middleware provides the fiber handlers that authenticate and
// authorize requests.
package middleware

import (
	"errors"

	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/service/auth"
	"github.com/amirasaad/bankapi/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey    = "user"
	identityKey = "identity"
)

// JwtProtected verifies the bearer access token of a request and stores the
// identity it carries for the next handlers. Every failure is answered with
// 401.
func JwtProtected(tokens *auth.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    tokens.AccessSecret(),
		},
		Claims:     &auth.Claims{},
		ContextKey: tokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return jwtError(c, errors.New("missing token"))
			}
			claims, _ := token.Claims.(*auth.Claims)
			id, err := tokens.IdentityFromClaims(claims, auth.AccessToken)
			if err != nil {
				return jwtError(c, err)
			}
			c.Locals(identityKey, id)
			return c.Next()
		},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	detail := "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		detail = "Missing or malformed JWT"
	}
	log.Debugw("Token rejected", "path", c.Path(), "error", err)
	return common.ProblemDetailsJSON(c, "Unauthorized", err, detail, fiber.StatusUnauthorized)
}

// Identity returns the identity stored by JwtProtected.
func Identity(c *fiber.Ctx) (*user.Identity, bool) {
	id, ok := c.Locals(identityKey).(*user.Identity)
	return id, ok && id != nil
}

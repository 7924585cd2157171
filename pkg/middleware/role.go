package middleware

import (
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/service/auth"
	"github.com/amirasaad/bankapi/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles lets the request through when the identity holds any of roles.
// It must run after JwtProtected.
func RequireRoles(roles ...user.Role) fiber.Handler {
	required := user.NewRoles(roles...)
	return func(c *fiber.Ctx) error {
		id, _ := Identity(c)
		if err := auth.Authorize(required, id); err != nil {
			return common.ProblemDetailsJSON(c, "Forbidden", err, fiber.StatusForbidden)
		}
		return c.Next()
	}
}

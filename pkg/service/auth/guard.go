package auth

import (
	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/domain/user"
)

// Authorize decides whether id may use an endpoint that requires any one of
// required. An empty requirement allows everyone, including anonymous
// callers. Denials are Forbidden errors.
func Authorize(required user.Roles, id *user.Identity) error {
	if len(required) == 0 {
		return nil
	}
	if id == nil {
		return domain.NewError(domain.ErrForbidden, "user not authenticated")
	}
	if len(id.Roles) == 0 {
		return domain.NewError(domain.ErrForbidden, "user has no roles assigned")
	}
	if id.Roles.Intersects(required) {
		return nil
	}
	return domain.Errorf(domain.ErrForbidden, "access denied, required roles: %s", required)
}

package user

import "github.com/google/uuid"

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Roles Roles     `json:"roles"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Roles.Has(RoleAdmin)
}

// CanAccess reports whether the identity may act on a resource owned by ownerID.
// Admins may act on anything.
func (i *Identity) CanAccess(ownerID uuid.UUID) bool {
	if i == nil {
		return false
	}
	return i.IsAdmin() || i.ID == ownerID
}

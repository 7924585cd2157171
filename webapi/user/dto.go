package user

// UpdateUserInput represents the request body for updating a user. Role and
// status may only be changed by admins.
type UpdateUserInput struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=32"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	Role        *string `json:"role" validate:"omitempty,oneof=user admin"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

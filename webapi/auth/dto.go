package auth

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// RefreshInput carries the refresh token to exchange.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

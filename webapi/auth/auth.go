package auth

import (
	"errors"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/middleware"
	authsvc "github.com/amirasaad/bankapi/pkg/service/auth"
	"github.com/amirasaad/bankapi/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/refresh", Refresh(authSvc))
	app.Get("/auth/me", middleware.JwtProtected(authSvc.Tokens()), Me(authSvc))
}

// Register creates a user with the user role and returns a token pair.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserSignup true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.UserSignup](c)
		if input == nil {
			return err // Error already written by BindAndValidate
		}
		user, tokens, err := authSvc.Register(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Registered", fiber.Map{
			"user":   user,
			"tokens": tokens,
		})
	}
}

// Login handles user authentication and returns a token pair.
// @Summary User login
// @Description Authenticate user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // Error already written by BindAndValidate
		}
		user, tokens, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid email or password", err, "Email or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{
			"user":   user,
			"tokens": tokens,
		})
	}
}

// Refresh exchanges a refresh token for a new token pair.
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshInput true "Refresh token"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/refresh [post]
func Refresh(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RefreshInput](c)
		if input == nil {
			return err
		}
		tokens, err := authSvc.Refresh(c.Context(), input.RefreshToken)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tokens refreshed", tokens)
	}
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/me [get]
// @Security Bearer
func Me(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.Identity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		user, err := authSvc.Me(c.Context(), id.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return common.ProblemDetailsJSON(c, "Unauthorized", err, "user no longer exists", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Current user", fiber.Map{
			"user":  user,
			"roles": id.Roles,
		})
	}
}

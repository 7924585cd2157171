package user

import (
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/middleware"
	authsvc "github.com/amirasaad/bankapi/pkg/service/auth"
	usersvc "github.com/amirasaad/bankapi/pkg/service/user"
	"github.com/amirasaad/bankapi/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, tokens *authsvc.TokenService) {
	users := app.Group("/users", middleware.JwtProtected(tokens))
	adminOnly := middleware.RequireRoles(user.RoleAdmin)
	anyone := middleware.RequireRoles(user.RoleAdmin, user.RoleUser)

	users.Post("/", adminOnly, CreateUser(userSvc))
	users.Get("/", adminOnly, ListUsers(userSvc))
	users.Get("/email/:email", adminOnly, GetUserByEmail(userSvc))
	users.Get("/:id", anyone, GetUser(userSvc))
	users.Patch("/:id", anyone, UpdateUser(userSvc))
	users.Delete("/:id", adminOnly, DeleteUser(userSvc))
}

// CreateUser creates a user with any role.
// @Summary Create a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserSignup true "User creation data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users [post]
// @Security Bearer
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.UserSignup](c)
		if input == nil {
			return err // error response already written
		}
		created, err := userSvc.Create(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", created)
	}
}

// ListUsers returns one page of users.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} common.Response
// @Router /users [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := common.Pagination(c)
		users, err := userSvc.List(c.Context(), page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users", users)
	}
}

// GetUser returns a user by ID. Users may only read themselves.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id} [get]
// @Security Bearer
func GetUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		if !actor.CanAccess(id) {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, "You are not allowed to read this user", fiber.StatusForbidden)
		}
		found, err := userSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", found)
	}
}

// GetUserByEmail returns a user by email.
// @Summary Get user by email
// @Tags users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /users/email/{email} [get]
// @Security Bearer
func GetUserByEmail(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		found, err := userSvc.GetByEmail(c.Context(), c.Params("email"))
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", found)
	}
}

// UpdateUser updates a user. Users may update themselves except for role
// and status.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserInput true "User update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{id} [patch]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		actor, _ := middleware.Identity(c)
		if !actor.CanAccess(id) {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, "You are not allowed to update this user", fiber.StatusForbidden)
		}
		if !actor.IsAdmin() && (input.Role != nil || input.Status != nil) {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, "Only admins can change role or status", fiber.StatusForbidden)
		}
		updated, err := userSvc.Update(c.Context(), id, &dto.UserUpdate{
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Email:       input.Email,
			Password:    input.Password,
			PhoneNumber: input.PhoneNumber,
			Address:     input.Address,
			Role:        input.Role,
			Status:      input.Status,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		log.Infow("User updated", "userID", id, "by", actor.ID)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", updated)
	}
}

// DeleteUser deletes a user that owns no accounts.
// @Summary Delete user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users/{id} [delete]
// @Security Bearer
func DeleteUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		if err := userSvc.Delete(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

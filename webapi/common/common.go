// Package common holds the response envelopes, error mapping and request
// binding shared by the HTTP handlers.
package common

import (
	"errors"
	"strings"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const internalErrorDetail = "an unexpected error occurred"

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(
	c *fiber.Ctx,
	status int,
	message string,
	data any,
) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 error response. opts may carry a
// string detail, an int status and a value for the errors member, in any
// order. Without an explicit status the status is derived from err. Details
// of internal errors are logged and never sent to the client.
func ProblemDetailsJSON(
	c *fiber.Ctx,
	title string,
	err error,
	opts ...any,
) error {
	status := 0
	detail := ""
	var extra any
	for _, opt := range opts {
		switch v := opt.(type) {
		case int:
			status = v
		case string:
			detail = v
		default:
			extra = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
	}
	if detail == "" && err != nil {
		detail = err.Error()
	}
	if status >= fiber.StatusInternalServerError {
		if err != nil {
			log.Errorw("Request failed", "path", c.Path(), "method", c.Method(), "error", err)
		}
		detail = internalErrorDetail
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
		Errors:   extra,
	})
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorTitle is the problem title for a status derived from a domain error.
func ErrorTitle(err error) string {
	switch ErrorToStatusCode(err) {
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Forbidden"
	case fiber.StatusUnprocessableEntity:
		return "Unprocessable Entity"
	default:
		return "Internal Server Error"
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		}
		fields := make([]FieldError, 0, len(verrs))
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
			names = append(names, fe.Field())
		}
		return nil, ProblemDetailsJSON(
			c,
			"Validation failed",
			err,
			"invalid fields: "+strings.Join(names, ", "),
			fiber.StatusBadRequest,
			fields,
		)
	}
	return &input, nil
}

// ParseUUIDParam reads a path parameter that must be a UUID. On failure a
// 400 response is written and ok is false.
func ParseUUIDParam(c *fiber.Ctx, name string) (id uuid.UUID, ok bool, err error) {
	id, parseErr := uuid.Parse(c.Params(name))
	if parseErr != nil {
		return uuid.Nil, false, ProblemDetailsJSON(
			c,
			"Invalid "+name,
			parseErr,
			name+" must be a valid UUID",
			fiber.StatusBadRequest,
		)
	}
	return id, true, nil
}

// Pagination reads the page and pageSize query parameters.
func Pagination(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	pageSize = c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

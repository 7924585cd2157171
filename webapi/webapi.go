// Package webapi provides HTTP handlers and API endpoints for the bank API.
// It is organized into sub-packages for different domains:
// - auth: Registration, login, token refresh
// - user: User management endpoints
// - account: Account endpoints and balance operations
// - transaction: Transaction endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/bankapi/pkg/app"
	accountweb "github.com/amirasaad/bankapi/webapi/account"
	authweb "github.com/amirasaad/bankapi/webapi/auth"
	"github.com/amirasaad/bankapi/webapi/common"
	transactionweb "github.com/amirasaad/bankapi/webapi/transaction"
	userweb "github.com/amirasaad/bankapi/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "bankapi",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		},
	})

	fiberApp.Use(recover.New())
	if cfg.Env != "test" {
		fiberApp.Use(logger.New())
	}

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		Storage:    app.Deps.RateLimitStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Bank API is running! 🚀")
		},
	)

	if cfg.Metrics == nil || cfg.Metrics.Enabled {
		gatherer := app.Deps.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	authweb.Routes(fiberApp, app.AuthService)
	userweb.Routes(fiberApp, app.UserService, app.Tokens)
	accountweb.Routes(fiberApp, app.AccountService, app.TransactionService, app.Tokens)
	transactionweb.Routes(fiberApp, app.TransactionService, app.Tokens)
	return fiberApp
}

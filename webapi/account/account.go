package account

import (
	"github.com/amirasaad/bankapi/pkg/domain/account"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/middleware"
	accountsvc "github.com/amirasaad/bankapi/pkg/service/account"
	authsvc "github.com/amirasaad/bankapi/pkg/service/auth"
	txsvc "github.com/amirasaad/bankapi/pkg/service/transaction"
	"github.com/amirasaad/bankapi/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routes registers the account endpoints. Every route requires a valid
// access token.
//
// Routes:
//   - POST   /accounts                : Open an account for a user (admin).
//   - GET    /accounts                : List all accounts (admin).
//   - GET    /accounts/user/:userId   : List the accounts of a user.
//   - GET    /accounts/:id            : Get an account.
//   - GET    /accounts/:id/balance    : Get the balance of an account.
//   - PATCH  /accounts/:id            : Edit account settings (admin).
//   - DELETE /accounts/:id            : Remove an account with zero balance (admin).
//   - POST   /accounts/:id/deposit    : Deposit funds.
//   - POST   /accounts/:id/withdraw   : Withdraw funds.
//   - POST   /accounts/:id/transfer   : Transfer funds to another account.
//   - POST   /accounts/:id/clear      : Bring the balance to zero (admin).
func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	processor *txsvc.Processor,
	tokens *authsvc.TokenService,
) {
	accounts := app.Group("/accounts", middleware.JwtProtected(tokens))
	adminOnly := middleware.RequireRoles(user.RoleAdmin)
	anyone := middleware.RequireRoles(user.RoleAdmin, user.RoleUser)

	accounts.Post("/", adminOnly, OpenAccount(accountSvc))
	accounts.Get("/", adminOnly, ListAccounts(accountSvc))
	accounts.Get("/user/:userId", anyone, ListUserAccounts(accountSvc))
	accounts.Get("/:id", anyone, GetAccount(accountSvc))
	accounts.Get("/:id/balance", anyone, GetBalance(accountSvc))
	accounts.Patch("/:id", adminOnly, UpdateAccount(accountSvc))
	accounts.Delete("/:id", adminOnly, RemoveAccount(accountSvc))
	accounts.Post("/:id/deposit", anyone, Deposit(processor))
	accounts.Post("/:id/withdraw", anyone, Withdraw(processor))
	accounts.Post("/:id/transfer", anyone, Transfer(processor))
	accounts.Post("/:id/clear", adminOnly, ClearBalance(processor))
}

// OpenAccount opens an account for the user named in the body.
// @Summary Open a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body dto.AccountOpen true "Account data"
// @Success 201 {object} common.Response "Account created successfully"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "User not found"
// @Router /accounts [post]
// @Security Bearer
func OpenAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.AccountOpen](c)
		if input == nil {
			return err
		}
		acct, err := accountSvc.Open(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		log.Infow("Account opened", "accountID", acct.ID, "userID", acct.UserID)
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", acct)
	}
}

// ListAccounts returns one page of accounts.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Router /accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := common.Pagination(c)
		accounts, err := accountSvc.List(c.Context(), page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", accounts)
	}
}

// ListUserAccounts returns the accounts of a user.
// @Summary List accounts of a user
// @Tags accounts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /accounts/user/{userId} [get]
// @Security Bearer
func ListUserAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.ParseUUIDParam(c, "userId")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		accounts, err := accountSvc.ListByUser(c.Context(), actor, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", accounts)
	}
}

// GetAccount returns an account.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		acct, err := accountSvc.Get(c.Context(), actor, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", acct)
	}
}

// GetBalance returns the current balance of an account.
// @Summary Get account balance
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/balance [get]
// @Security Bearer
func GetBalance(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		acct, err := accountSvc.Get(c.Context(), actor, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Fetched account balance", BalanceResponse{
			AccountID: acct.ID,
			Balance:   acct.Balance,
			Currency:  acct.Currency,
		})
	}
}

// UpdateAccount edits the settings of an account. The balance cannot be set.
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.AccountUpdate true "Account settings"
// @Success 200 {object} common.Response
// @Router /accounts/{id} [patch]
// @Security Bearer
func UpdateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.AccountUpdate](c)
		if input == nil {
			return err
		}
		acct, err := accountSvc.Update(c.Context(), id, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", acct)
	}
}

// RemoveAccount deletes an account whose balance is zero.
// @Summary Remove account
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 204
// @Failure 409 {object} common.ProblemDetails
// @Router /accounts/{id} [delete]
// @Security Bearer
func RemoveAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		if err := accountSvc.Remove(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to remove account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Deposit adds funds to an account.
// @Summary Deposit funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body DepositRequest true "Deposit details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /accounts/{id}/deposit [post]
// @Security Bearer
func Deposit(processor *txsvc.Processor) fiber.Handler {
	return moneyMovement(processor, account.TypeDeposit, "Deposit successful")
}

// Withdraw removes funds from an account.
// @Summary Withdraw funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body WithdrawRequest true "Withdrawal details"
// @Success 201 {object} common.Response
// @Failure 422 {object} common.ProblemDetails "Insufficient funds"
// @Router /accounts/{id}/withdraw [post]
// @Security Bearer
func Withdraw(processor *txsvc.Processor) fiber.Handler {
	return moneyMovement(processor, account.TypeWithdrawal, "Withdrawal successful")
}

func moneyMovement(
	processor *txsvc.Processor,
	txType account.TransactionType,
	message string,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		actor, _ := middleware.Identity(c)
		tx, err := processor.Create(c.Context(), command(actor, id, txType, input.Amount, input.Currency, nil, input.Reference, input.Notes))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to "+string(txType), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, message, tx)
	}
}

// Transfer moves funds to another account in the same currency.
// @Summary Transfer funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Source account ID"
// @Param request body TransferRequest true "Transfer details"
// @Success 201 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails "Insufficient funds"
// @Router /accounts/{id}/transfer [post]
// @Security Bearer
func Transfer(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		actor, _ := middleware.Identity(c)
		dest := input.DestinationAccountID
		tx, err := processor.Create(c.Context(), command(actor, id, account.TypeTransfer, input.Amount, input.Currency, &dest, input.Reference, input.Notes))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer successful", tx)
	}
}

// ClearBalance brings the balance of an account to zero.
// @Summary Clear account balance
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/clear [post]
// @Security Bearer
func ClearBalance(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		acct, tx, err := processor.ClearBalance(c.Context(), actor, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to clear balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance cleared", fiber.Map{
			"account":     acct,
			"transaction": tx,
		})
	}
}

func command(
	actor *user.Identity,
	accountID uuid.UUID,
	txType account.TransactionType,
	amount decimal.Decimal,
	currency string,
	related *uuid.UUID,
	reference, notes string,
) dto.TransactionCommand {
	cmd := dto.TransactionCommand{
		AccountID:        accountID,
		Type:             string(txType),
		Amount:           amount,
		Currency:         currency,
		RelatedAccountID: related,
		Reference:        reference,
		Notes:            notes,
	}
	if actor != nil {
		cmd.ActorID = actor.ID
		cmd.ActorRoles = actor.Roles.Strings()
	}
	return cmd
}

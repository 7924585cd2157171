package transaction

import (
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/middleware"
	authsvc "github.com/amirasaad/bankapi/pkg/service/auth"
	txsvc "github.com/amirasaad/bankapi/pkg/service/transaction"
	"github.com/amirasaad/bankapi/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, processor *txsvc.Processor, tokens *authsvc.TokenService) {
	txs := app.Group("/transactions", middleware.JwtProtected(tokens))
	adminOnly := middleware.RequireRoles(user.RoleAdmin)
	anyone := middleware.RequireRoles(user.RoleAdmin, user.RoleUser)

	txs.Post("/", anyone, CreateTransaction(processor))
	txs.Get("/", adminOnly, ListTransactions(processor))
	txs.Get("/account/:accountId", anyone, ListAccountTransactions(processor))
	txs.Get("/:id", anyone, GetTransaction(processor))
	txs.Patch("/:id", adminOnly, UpdateTransaction(processor))
	txs.Delete("/:id", adminOnly, DeleteTransaction(processor))
}

// CreateTransaction runs a deposit, withdrawal or transfer.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails "Insufficient funds"
// @Router /transactions [post]
// @Security Bearer
func CreateTransaction(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		actor, _ := middleware.Identity(c)
		cmd := dto.TransactionCommand{
			AccountID:        input.AccountID,
			Type:             input.Type,
			Amount:           input.Amount,
			Currency:         input.Currency,
			RelatedAccountID: input.RelatedAccountID,
			Reference:        input.Reference,
			Notes:            input.Notes,
		}
		if actor != nil {
			cmd.ActorID = actor.ID
			cmd.ActorRoles = actor.Roles.Strings()
		}
		tx, err := processor.Create(c.Context(), cmd)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction completed", tx)
	}
}

// ListTransactions returns one page of all transactions.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := common.Pagination(c)
		txs, err := processor.List(c.Context(), page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// ListAccountTransactions returns the history of an account, newest first.
// @Summary List account transactions
// @Tags transactions
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Router /transactions/account/{accountId} [get]
// @Security Bearer
func ListAccountTransactions(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok, err := common.ParseUUIDParam(c, "accountId")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		txs, err := processor.ListByAccount(c.Context(), actor, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// GetTransaction returns a transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Router /transactions/{id} [get]
// @Security Bearer
func GetTransaction(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		actor, _ := middleware.Identity(c)
		tx, err := processor.Get(c.Context(), actor, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorTitle(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction", tx)
	}
}

// UpdateTransaction edits notes or reference of a transaction that is not
// completed.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionUpdate true "Editable fields"
// @Success 200 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /transactions/{id} [patch]
// @Security Bearer
func UpdateTransaction(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.TransactionUpdate](c)
		if input == nil {
			return err
		}
		tx, err := processor.Update(c.Context(), id, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", tx)
	}
}

// DeleteTransaction removes a transaction that is not completed.
// @Summary Delete transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 409 {object} common.ProblemDetails
// @Router /transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(processor *txsvc.Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		if err := processor.Remove(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

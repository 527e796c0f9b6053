package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"minimart/checkout"
)

type transactionItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createTransactionRequest struct {
	Items []transactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (a *API) createTransaction(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		a.Log.Warn("validation failed for transaction create", zap.Error(err))
		return validationFailed(c, err)
	}

	lines := make([]checkout.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, checkout.OrderLine{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
		})
	}

	trx, err := a.Engine.CreateTransaction(c.Context(), a.userID(c), lines)
	if err != nil {
		var notFound *checkout.ProductNotFoundError
		var noStock *checkout.InsufficientStockError
		if errors.As(err, &notFound) || errors.As(err, &noStock) {
			return fail(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		a.Log.Error("create transaction failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	a.Hub.Broadcast(checkoutEvent{
		Type:          "transaction.created",
		TransactionID: trx.ID,
		UserID:        trx.UserID,
		Total:         trx.Total,
	})
	return success(c, fiber.StatusCreated, "Transaction created successfully", trx)
}

func (a *API) getTransaction(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	trx, err := a.Engine.GetTransactionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, checkout.ErrTransactionNotFound) {
			return fail(c, fiber.StatusNotFound, "Transaction not found", nil)
		}
		a.Log.Error("get transaction failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Transaction fetched successfully", trx)
}

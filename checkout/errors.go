package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// ProductNotFoundError reports an order line referencing a product that
// does not exist or has been retired.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found for ID: %s", e.ProductID)
}

// InsufficientStockError reports an order line asking for more units than
// the product has left at the time the line is evaluated.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Stock     int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product ID: %s (have %d, requested %d)",
		e.ProductID, e.Stock, e.Requested)
}

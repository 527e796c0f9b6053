package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reservedLine is an order line whose stock has been decremented inside
// the active unit of work, carrying the unit price snapshot taken at the
// moment of reservation.
type reservedLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// reserveStock validates and applies each line in order. Lines are
// processed one at a time so that a decrement made for an earlier line is
// visible to a later line for the same product; two lines can never both
// subtract from the same pre-transaction stock value. The first failing
// line aborts the whole operation and the unit of work's rollback discards
// any decrements already applied.
func reserveStock(uow UnitOfWork, lines []OrderLine) ([]reservedLine, error) {
	reserved := make([]reservedLine, 0, len(lines))
	for _, line := range lines {
		product, err := uow.FindProductForUpdate(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		if product.Stock < line.Quantity {
			return nil, &InsufficientStockError{
				ProductID: line.ProductID,
				Stock:     product.Stock,
				Requested: line.Quantity,
			}
		}
		if err := uow.PatchProductStock(line.ProductID, product.Stock-line.Quantity); err != nil {
			return nil, err
		}
		reserved = append(reserved, reservedLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}
	return reserved, nil
}

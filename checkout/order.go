package checkout

import (
	"github.com/shopspring/decimal"

	"minimart/models"
)

// buildItems turns reserved lines into transaction items with
// subtotal = unit price x quantity and returns the order total. Pure
// computation; this is the single authoritative place subtotals and the
// total are derived.
func buildItems(lines []reservedLine) ([]models.TransactionItem, decimal.Decimal) {
	items := make([]models.TransactionItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.TransactionItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total
}

package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildItemsComputesSubtotalsAndTotal(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	lines := []reservedLine{
		{ProductID: p1, Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: p2, Quantity: 2, UnitPrice: decimal.RequireFromString("4.25")},
	}

	items, total := buildItems(lines)

	assert.Len(t, items, 2)
	assert.True(t, items[0].Subtotal.Equal(decimal.RequireFromString("30.00")),
		"got subtotal %s", items[0].Subtotal)
	assert.True(t, items[1].Subtotal.Equal(decimal.RequireFromString("8.50")),
		"got subtotal %s", items[1].Subtotal)
	assert.True(t, total.Equal(decimal.RequireFromString("38.50")), "got total %s", total)

	for i, item := range items {
		assert.Equal(t, lines[i].ProductID, item.ProductID)
		assert.Equal(t, lines[i].Quantity, item.Quantity)
		assert.True(t, item.Price.Equal(lines[i].UnitPrice))
		assert.True(t, item.Subtotal.Equal(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}
}

func TestBuildItemsEmpty(t *testing.T) {
	items, total := buildItems(nil)
	assert.Empty(t, items)
	assert.True(t, total.IsZero())
}

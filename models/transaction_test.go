package models_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"minimart/db"
	"minimart/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestTransactionItemSubtotalFilledWhenZero(t *testing.T) {
	gdb := newTestDB(t)

	trx := &models.Transaction{
		UserID: uuid.New(),
		Total:  decimal.RequireFromString("30.00"),
		Items: []models.TransactionItem{{
			ProductID: uuid.New(),
			Quantity:  3,
			Price:     decimal.RequireFromString("10.00"),
		}},
	}
	require.NoError(t, gdb.Create(trx).Error)

	assert.True(t, trx.Items[0].Subtotal.Equal(decimal.RequireFromString("30.00")),
		"got subtotal %s", trx.Items[0].Subtotal)
	assert.NotEqual(t, uuid.Nil, trx.ID)
	assert.NotEqual(t, uuid.Nil, trx.Items[0].ID)
}

func TestTransactionItemRejectsDivergingSubtotal(t *testing.T) {
	gdb := newTestDB(t)

	trx := &models.Transaction{
		UserID: uuid.New(),
		Total:  decimal.RequireFromString("30.00"),
		Items: []models.TransactionItem{{
			ProductID: uuid.New(),
			Quantity:  3,
			Price:     decimal.RequireFromString("10.00"),
			Subtotal:  decimal.RequireFromString("25.00"),
		}},
	}
	err := gdb.Create(trx).Error
	require.Error(t, err, "a subtotal that is not price x quantity must be rejected")
	assert.Contains(t, err.Error(), "subtotal")
}

func TestProductDefaultsToActive(t *testing.T) {
	gdb := newTestDB(t)

	product := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 1}
	require.NoError(t, gdb.Create(product).Error)
	assert.Equal(t, models.StatusActive, product.Status)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

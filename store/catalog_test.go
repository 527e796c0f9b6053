package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"minimart/checkout"
	"minimart/db"
	"minimart/models"
	"minimart/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestProductReadsFilterToActive(t *testing.T) {
	catalog := store.NewCatalog(newTestDB(t))
	ctx := context.Background()

	active := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 5}
	require.NoError(t, catalog.CreateProduct(ctx, active))
	gone := &models.Product{Name: "old rod", Price: decimal.RequireFromString("1.00"), Stock: 0}
	require.NoError(t, catalog.CreateProduct(ctx, gone))
	retired, err := catalog.RetireProduct(ctx, gone.ID)
	require.NoError(t, err)
	require.True(t, retired)

	products, err := catalog.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)

	retiredProducts, err := catalog.RetiredProducts(ctx)
	require.NoError(t, err)
	require.Len(t, retiredProducts, 1)
	assert.Equal(t, gone.ID, retiredProducts[0].ID)
	assert.NotNil(t, retiredProducts[0].DeletedAt)

	// Lookup by id hides retired records too.
	got, err := catalog.Product(ctx, gone.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRetireProductTwice(t *testing.T) {
	catalog := store.NewCatalog(newTestDB(t))
	ctx := context.Background()
	product := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 5}
	require.NoError(t, catalog.CreateProduct(ctx, product))

	retired, err := catalog.RetireProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, retired)

	retired, err = catalog.RetireProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, retired, "retiring an already retired product must report not found")
}

func TestProductNameTakenIgnoresRetired(t *testing.T) {
	catalog := store.NewCatalog(newTestDB(t))
	ctx := context.Background()

	product := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 5}
	require.NoError(t, catalog.CreateProduct(ctx, product))

	taken, err := catalog.ProductNameTaken(ctx, "rod", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	// The owning product itself does not count when excluded (update path).
	taken, err = catalog.ProductNameTaken(ctx, "rod", product.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = catalog.RetireProduct(ctx, product.ID)
	require.NoError(t, err)

	taken, err = catalog.ProductNameTaken(ctx, "rod", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, taken, "retired products must not reserve their name")
}

func TestRetireCategoryDetachesProducts(t *testing.T) {
	gdb := newTestDB(t)
	catalog := store.NewCatalog(gdb)
	ctx := context.Background()

	category := &models.Category{Name: "electrodes"}
	require.NoError(t, catalog.CreateCategory(ctx, category))
	product := &models.Product{
		CategoryID: &category.ID,
		Name:       "rod",
		Price:      decimal.RequireFromString("10.00"),
		Stock:      5,
	}
	require.NoError(t, catalog.CreateProduct(ctx, product))

	retired, err := catalog.RetireCategory(ctx, category.ID)
	require.NoError(t, err)
	require.True(t, retired)

	got, err := catalog.Product(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "product must stay active after its category retires")
	assert.Nil(t, got.CategoryID)

	cat, err := catalog.Category(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestCategoryNameTakenIgnoresRetired(t *testing.T) {
	catalog := store.NewCatalog(newTestDB(t))
	ctx := context.Background()

	category := &models.Category{Name: "electrodes"}
	require.NoError(t, catalog.CreateCategory(ctx, category))

	taken, err := catalog.CategoryNameTaken(ctx, "electrodes", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = catalog.RetireCategory(ctx, category.ID)
	require.NoError(t, err)

	taken, err = catalog.CategoryNameTaken(ctx, "electrodes", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestInTxRollsBackOnError(t *testing.T) {
	gdb := newTestDB(t)
	catalog := store.NewCatalog(gdb)
	ctx := context.Background()

	product := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 5}
	require.NoError(t, catalog.CreateProduct(ctx, product))

	boom := errors.New("boom")
	err := catalog.InTx(ctx, func(uow checkout.UnitOfWork) error {
		found, err := uow.FindProductForUpdate(product.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NoError(t, uow.PatchProductStock(product.ID, 0))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := catalog.Product(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "patch must not survive the rollback")
}

func TestUnitOfWorkCommitsWrites(t *testing.T) {
	gdb := newTestDB(t)
	catalog := store.NewCatalog(gdb)
	ctx := context.Background()

	product := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 5}
	require.NoError(t, catalog.CreateProduct(ctx, product))

	var inserted *models.Transaction
	err := catalog.InTx(ctx, func(uow checkout.UnitOfWork) error {
		if err := uow.PatchProductStock(product.ID, 3); err != nil {
			return err
		}
		inserted = &models.Transaction{
			UserID: uuid.New(),
			Total:  decimal.RequireFromString("20.00"),
			Items: []models.TransactionItem{{
				ProductID: product.ID,
				Quantity:  2,
				Price:     decimal.RequireFromString("10.00"),
				Subtotal:  decimal.RequireFromString("20.00"),
			}},
		}
		return uow.InsertTransaction(inserted)
	})
	require.NoError(t, err)

	got, err := catalog.Product(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	trx, err := catalog.FindTransaction(ctx, inserted.ID)
	require.NoError(t, err)
	require.NotNil(t, trx)
	require.Len(t, trx.Items, 1)
	require.NotNil(t, trx.Items[0].Product)
	assert.Equal(t, product.ID, trx.Items[0].Product.ID)
}

func TestFindProductForUpdateHidesRetired(t *testing.T) {
	catalog := store.NewCatalog(newTestDB(t))
	ctx := context.Background()

	product := &models.Product{Name: "rod", Price: decimal.RequireFromString("10.00"), Stock: 5}
	require.NoError(t, catalog.CreateProduct(ctx, product))
	_, err := catalog.RetireProduct(ctx, product.ID)
	require.NoError(t, err)

	err = catalog.InTx(ctx, func(uow checkout.UnitOfWork) error {
		found, err := uow.FindProductForUpdate(product.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
		return nil
	})
	require.NoError(t, err)
}

func TestFindTransactionAbsent(t *testing.T) {
	catalog := store.NewCatalog(newTestDB(t))

	trx, err := catalog.FindTransaction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, trx)
}

package routes

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"minimart/db"
	"minimart/store"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return &API{
		Catalog: store.NewCatalog(gdb),
		Users:   store.NewUsers(gdb),
		Log:     zap.NewNop(),
	}
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(payload)
}

func TestCreateProductNonPositivePriceIsValidationError(t *testing.T) {
	api := newTestAPI(t)
	app := fiber.New()
	app.Post("/products", api.createProduct)

	for _, price := range []string{"0", "-1.50"} {
		status, body := postJSON(t, app, "/products",
			fmt.Sprintf(`{"name":"rod","price":%s,"stock":3}`, price))
		assert.Equal(t, fiber.StatusUnprocessableEntity, status, "price %s", price)
		assert.Contains(t, body, "Validation Failed")
		assert.Contains(t, body, "Price")
	}
}

func TestCreateProductWithValidPrice(t *testing.T) {
	api := newTestAPI(t)
	app := fiber.New()
	app.Post("/products", api.createProduct)

	status, body := postJSON(t, app, "/products", `{"name":"rod","price":10.00,"stock":3}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Contains(t, body, "Product created successfully")
}

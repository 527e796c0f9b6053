package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"minimart/models"
)

type productRequest struct {
	CategoryID  string          `json:"category_id" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Image       string          `json:"image"`
}

func (a *API) getAllProducts(c *fiber.Ctx) error {
	products, err := a.Catalog.Products(c.Context())
	if err != nil {
		a.Log.Error("fetch products failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Products fetched successfully", products)
}

func (a *API) getRetiredProducts(c *fiber.Ctx) error {
	products, err := a.Catalog.RetiredProducts(c.Context())
	if err != nil {
		a.Log.Error("fetch retired products failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Retired products fetched successfully", products)
}

func (a *API) getProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	product, err := a.Catalog.Product(c.Context(), id)
	if err != nil {
		a.Log.Error("fetch product failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if product == nil {
		return fail(c, fiber.StatusBadRequest, "Product not found", nil)
	}
	return success(c, fiber.StatusOK, "Product fetched successfully", product)
}

func (a *API) createProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}
	if !req.Price.IsPositive() {
		return fail(c, fiber.StatusUnprocessableEntity, "Validation Failed", []fiber.Map{
			{"field": "Price", "rule": "gt", "param": "0"},
		})
	}

	categoryID, ok := a.resolveCategory(c, req.CategoryID)
	if !ok {
		return nil
	}

	taken, err := a.Catalog.ProductNameTaken(c.Context(), req.Name, uuid.Nil)
	if err != nil {
		a.Log.Error("product name lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if taken {
		a.Log.Warn("attempt to create product with existing name", zap.String("name", req.Name))
		return fail(c, fiber.StatusBadRequest, "Product name already exists", nil)
	}

	product := &models.Product{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
	}
	if err := a.Catalog.CreateProduct(c.Context(), product); err != nil {
		a.Log.Error("create product failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	a.Log.Info("product created", zap.String("product_id", product.ID.String()))
	return success(c, fiber.StatusCreated, "Product created successfully", product)
}

func (a *API) updateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}
	if !req.Price.IsPositive() {
		return fail(c, fiber.StatusUnprocessableEntity, "Validation Failed", []fiber.Map{
			{"field": "Price", "rule": "gt", "param": "0"},
		})
	}

	product, err := a.Catalog.Product(c.Context(), id)
	if err != nil {
		a.Log.Error("fetch product failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if product == nil {
		return fail(c, fiber.StatusBadRequest, "Product not found", nil)
	}

	taken, err := a.Catalog.ProductNameTaken(c.Context(), req.Name, id)
	if err != nil {
		a.Log.Error("product name lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if taken {
		return fail(c, fiber.StatusBadRequest, "Product name already exists", nil)
	}

	categoryID, ok := a.resolveCategory(c, req.CategoryID)
	if !ok {
		return nil
	}

	product.CategoryID = categoryID
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.Image = req.Image
	if err := a.Catalog.UpdateProduct(c.Context(), product); err != nil {
		a.Log.Error("update product failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Product updated successfully", product)
}

func (a *API) deleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	retired, err := a.Catalog.RetireProduct(c.Context(), id)
	if err != nil {
		a.Log.Error("retire product failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if !retired {
		return fail(c, fiber.StatusBadRequest, "Product not found or already deleted", nil)
	}
	a.Log.Info("product retired", zap.String("product_id", id.String()))
	return success(c, fiber.StatusOK, "Product deleted successfully", fiber.Map{"id": id})
}

// resolveCategory checks an optional category id from the request. On
// failure the error response is already written and ok is false.
func (a *API) resolveCategory(c *fiber.Ctx, raw string) (id *uuid.UUID, ok bool) {
	if raw == "" {
		return nil, true
	}
	parsed := uuid.MustParse(raw) // validated by the uuid tag
	category, err := a.Catalog.Category(c.Context(), parsed)
	if err != nil {
		a.Log.Error("fetch category failed", zap.Error(err))
		_ = fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
		return nil, false
	}
	if category == nil {
		_ = fail(c, fiber.StatusBadRequest, "Category not found", nil)
		return nil, false
	}
	return &parsed, true
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"minimart/models"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (a *API) getAllCategories(c *fiber.Ctx) error {
	categories, err := a.Catalog.Categories(c.Context())
	if err != nil {
		a.Log.Error("fetch categories failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Categories fetched successfully", categories)
}

func (a *API) getRetiredCategories(c *fiber.Ctx) error {
	categories, err := a.Catalog.RetiredCategories(c.Context())
	if err != nil {
		a.Log.Error("fetch retired categories failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Retired categories fetched successfully", categories)
}

func (a *API) getCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	category, err := a.Catalog.Category(c.Context(), id)
	if err != nil {
		a.Log.Error("fetch category failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if category == nil {
		return fail(c, fiber.StatusBadRequest, "Category not found", nil)
	}
	return success(c, fiber.StatusOK, "Category fetched successfully", category)
}

func (a *API) createCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	taken, err := a.Catalog.CategoryNameTaken(c.Context(), req.Name, uuid.Nil)
	if err != nil {
		a.Log.Error("category name lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if taken {
		a.Log.Warn("attempt to create category with existing name", zap.String("name", req.Name))
		return fail(c, fiber.StatusBadRequest, "Category name already exists", nil)
	}

	category := &models.Category{Name: req.Name}
	if err := a.Catalog.CreateCategory(c.Context(), category); err != nil {
		a.Log.Error("create category failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	a.Log.Info("category created", zap.String("category_id", category.ID.String()))
	return success(c, fiber.StatusCreated, "Category created successfully", category)
}

func (a *API) updateCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	category, err := a.Catalog.Category(c.Context(), id)
	if err != nil {
		a.Log.Error("fetch category failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if category == nil {
		return fail(c, fiber.StatusBadRequest, "Category not found", nil)
	}

	taken, err := a.Catalog.CategoryNameTaken(c.Context(), req.Name, id)
	if err != nil {
		a.Log.Error("category name lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if taken {
		return fail(c, fiber.StatusBadRequest, "Category name already exists", nil)
	}

	category.Name = req.Name
	if err := a.Catalog.UpdateCategory(c.Context(), category); err != nil {
		a.Log.Error("update category failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return success(c, fiber.StatusOK, "Category updated successfully", category)
}

func (a *API) deleteCategory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}
	retired, err := a.Catalog.RetireCategory(c.Context(), id)
	if err != nil {
		a.Log.Error("retire category failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if !retired {
		return fail(c, fiber.StatusBadRequest, "Category not found or already deleted", nil)
	}
	a.Log.Info("category retired", zap.String("category_id", id.String()))
	return success(c, fiber.StatusOK, "Category deleted successfully", fiber.Map{"id": id})
}

// Package store holds the GORM-backed catalog store. Reads default to
// active records; retired records are reachable only through the
// Retired* queries. Calls made during a checkout go through the
// UnitOfWork value produced by InTx instead of the shared handle.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minimart/checkout"
	"minimart/models"
)

type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// InTx runs fn inside one database transaction, handing it an explicit
// unit-of-work value. Context cancellation or a non-nil error from fn
// rolls the whole transaction back.
func (c *Catalog) InTx(ctx context.Context, fn func(checkout.UnitOfWork) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&unitOfWork{tx: tx})
	})
}

type unitOfWork struct {
	tx *gorm.DB
}

// FindProductForUpdate reads an active product under SELECT ... FOR
// UPDATE so two concurrent checkouts cannot both observe the same stock
// value. sqlite has no row locks and a single writer, so the clause is
// only added on postgres.
func (u *unitOfWork) FindProductForUpdate(id uuid.UUID) (*models.Product, error) {
	q := u.tx
	if u.tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var product models.Product
	err := q.Where("id = ? AND status = ?", id, models.StatusActive).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (u *unitOfWork) PatchProductStock(id uuid.UUID, stock int) error {
	return u.tx.Model(&models.Product{}).Where("id = ?", id).Update("stock", stock).Error
}

func (u *unitOfWork) InsertTransaction(trx *models.Transaction) error {
	return u.tx.Create(trx).Error
}

// FindTransaction loads a transaction with its items and each item's
// product. Returns nil when absent.
func (c *Catalog) FindTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var trx models.Transaction
	err := c.db.WithContext(ctx).
		Preload("Items.Product").
		First(&trx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (c *Catalog) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Find(&products).Error
	return products, err
}

func (c *Catalog) RetiredProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.db.WithContext(ctx).
		Where("status = ?", models.StatusRetired).
		Find(&products).Error
	return products, err
}

// Product returns the active product with the given id, or nil.
func (c *Catalog) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusActive).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductNameTaken reports whether an active product other than exclude
// already uses name.
func (c *Catalog) ProductNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Product{}).
		Where("name = ? AND status = ? AND id <> ?", name, models.StatusActive, exclude).
		Count(&count).Error
	return count > 0, err
}

func (c *Catalog) CreateProduct(ctx context.Context, product *models.Product) error {
	return c.db.WithContext(ctx).Create(product).Error
}

func (c *Catalog) UpdateProduct(ctx context.Context, product *models.Product) error {
	return c.db.WithContext(ctx).Save(product).Error
}

// RetireProduct soft-deletes a product. Returns false when no active
// product with the given id exists.
func (c *Catalog) RetireProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	res := c.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND status = ?", id, models.StatusActive).
		Updates(map[string]any{"status": models.StatusRetired, "deleted_at": now})
	return res.RowsAffected > 0, res.Error
}

func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Find(&categories).Error
	return categories, err
}

func (c *Catalog) RetiredCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.db.WithContext(ctx).
		Where("status = ?", models.StatusRetired).
		Find(&categories).Error
	return categories, err
}

func (c *Catalog) Category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := c.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusActive).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Catalog) CategoryNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Category{}).
		Where("name = ? AND status = ? AND id <> ?", name, models.StatusActive, exclude).
		Count(&count).Error
	return count > 0, err
}

func (c *Catalog) CreateCategory(ctx context.Context, category *models.Category) error {
	return c.db.WithContext(ctx).Create(category).Error
}

func (c *Catalog) UpdateCategory(ctx context.Context, category *models.Category) error {
	return c.db.WithContext(ctx).Save(category).Error
}

// RetireCategory soft-deletes a category and detaches its products, so
// they stay sellable without a category. Returns false when no active
// category with the given id exists.
func (c *Catalog) RetireCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	retired := false
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Category{}).
			Where("id = ? AND status = ?", id, models.StatusActive).
			Updates(map[string]any{"status": models.StatusRetired, "deleted_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		retired = true
		return tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
	})
	return retired, err
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a committed checkout. It is created exactly once,
// together with all of its items, and never updated afterwards.
type Transaction struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid" json:"user_id"`
	Total     decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"total"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	Items     []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TransactionItem captures the unit price at checkout time so historical
// totals stay stable when the product price changes later.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid" json:"product_id"`
	Quantity      int             `gorm:"not null;default:1" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate enforces subtotal = price x quantity. The order builder is
// the authoritative computation point; a diverging subtotal here means a
// caller bug, so the insert is rejected instead of silently fixed.
func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	want := i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
	if i.Subtotal.IsZero() {
		i.Subtotal = want
		return nil
	}
	if !i.Subtotal.Equal(want) {
		return fmt.Errorf("transaction item subtotal %s does not equal price %s x quantity %d",
			i.Subtotal, i.Price, i.Quantity)
	}
	return nil
}

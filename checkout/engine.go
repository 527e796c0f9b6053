// Package checkout implements the transaction engine: it validates
// multi-item orders against live inventory, reserves stock, computes
// totals and persists the transaction with its items as one atomic unit
// of work.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"minimart/models"
)

// OrderLine is one requested (product, quantity) pair. Quantity is
// expected to be >= 1; request validation rejects anything else before
// the engine runs.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// UnitOfWork is the transactional view of the catalog store handed to the
// engine for the duration of one atomic checkout. All reads and writes
// made through it become visible together at commit, or not at all.
type UnitOfWork interface {
	// FindProductForUpdate returns the active product with the given id,
	// read under a lock that blocks concurrent checkouts touching the
	// same row. Returns nil when no active product exists.
	FindProductForUpdate(id uuid.UUID) (*models.Product, error)
	PatchProductStock(id uuid.UUID, stock int) error
	InsertTransaction(trx *models.Transaction) error
}

// Store is the persistence surface the engine needs from the catalog
// store.
type Store interface {
	// InTx runs fn inside one database transaction. A non-nil error from
	// fn rolls everything back and is returned as-is.
	InTx(ctx context.Context, fn func(UnitOfWork) error) error
	// FindTransaction loads a transaction with its items and each item's
	// product. Returns nil when absent.
	FindTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
}

type Engine struct {
	store Store
	log   *zap.Logger
}

func NewEngine(store Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// CreateTransaction reserves stock for every line, computes the total and
// persists the transaction header plus items atomically. Any failing line
// aborts the whole unit of work with no partial effects; a transaction is
// either fully committed or never existed.
func (e *Engine) CreateTransaction(ctx context.Context, userID uuid.UUID, lines []OrderLine) (*models.Transaction, error) {
	trx := &models.Transaction{UserID: userID}

	err := e.store.InTx(ctx, func(uow UnitOfWork) error {
		reserved, err := reserveStock(uow, lines)
		if err != nil {
			return err
		}
		trx.Items, trx.Total = buildItems(reserved)
		return uow.InsertTransaction(trx)
	})
	if err != nil {
		e.log.Warn("checkout aborted",
			zap.String("user_id", userID.String()),
			zap.Int("lines", len(lines)),
			zap.Error(err))
		return nil, err
	}

	e.log.Info("transaction created",
		zap.String("transaction_id", trx.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", trx.Total.String()))
	return trx, nil
}

// GetTransactionByID fetches a committed transaction with its items and
// each item's referenced product. Returns ErrTransactionNotFound when no
// such transaction exists.
func (e *Engine) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	trx, err := e.store.FindTransaction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", id, err)
	}
	if trx == nil {
		return nil, ErrTransactionNotFound
	}
	return trx, nil
}

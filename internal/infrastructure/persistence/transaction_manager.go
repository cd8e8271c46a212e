package persistence

import (
	"context"

	"github.com/milkroute/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTransactionManager implements shared.TransactionManager on a GORM
// connection. The open transaction travels in the context, so every
// repository call made with the derived context joins the same transaction
// and commits or rolls back as one unit.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. A nested call
// joins the transaction already present on the context instead of opening
// a second one.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// WithinSavepoint runs fn inside a savepoint on the transaction carried by
// the context. GORM's nested Transaction call emits SAVEPOINT / ROLLBACK TO
// SAVEPOINT, so a constraint violation inside fn does not abort the
// enclosing transaction. Without an open transaction it falls back to
// WithinTransaction.
func (m *GormTransactionManager) WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := txFromContext(ctx)
	if tx == nil {
		return m.WithinTransaction(ctx, fn)
	}
	return tx.Transaction(func(sp *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, sp))
	})
}

// txFromContext returns the transaction carried by the context, or nil
func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// dbFromContext returns the context's transaction when one is open,
// falling back to the repository's own connection.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)

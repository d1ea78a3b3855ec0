package persistence

import (
	"context"

	"gorm.io/gorm"

	appledger "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/trade"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Movements returns the stock movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Movements() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Items returns the item quantity store scoped to the current transaction.
func (r *gormTransactionalRepositories) Items() ledger.ItemQuantityStore {
	return NewGormItemQuantityStore(r.tx)
}

// Purchases returns the purchase repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// Sales returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// FinishedGoods returns the finished good repository scoped to the current transaction.
func (r *gormTransactionalRepositories) FinishedGoods() catalog.FinishedGoodRepository {
	return NewGormFinishedGoodRepository(r.tx)
}

// SemiFinishedGoods returns the semi-finished good repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SemiFinishedGoods() catalog.SemiFinishedGoodRepository {
	return NewGormSemiFinishedGoodRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appledger.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

package ledger

import (
	"context"

	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories touched
// by a ledger append. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// The movement repository is append-only; the quantity store is the only
// writer of denormalized on-hand quantities. Trade and catalog repositories
// are exposed here so that finishing a document or recording a production
// run can flip document state and append movements in one unit of work.
type TransactionalRepositories interface {
	// Movements returns the stock movement repository scoped to the current transaction
	Movements() ledger.StockMovementRepository
	// Items returns the item quantity store scoped to the current transaction
	Items() ledger.ItemQuantityStore
	// Purchases returns the purchase repository scoped to the current transaction
	Purchases() trade.PurchaseRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() trade.SaleRepository
	// FinishedGoods returns the finished good repository scoped to the current transaction
	FinishedGoods() catalog.FinishedGoodRepository
	// SemiFinishedGoods returns the semi-finished good repository scoped to the current transaction
	SemiFinishedGoods() catalog.SemiFinishedGoodRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests against in-memory fakes.
type NoOpTransactionScope struct {
	movements         ledger.StockMovementRepository
	items             ledger.ItemQuantityStore
	purchases         trade.PurchaseRepository
	sales             trade.SaleRepository
	finishedGoods     catalog.FinishedGoodRepository
	semiFinishedGoods catalog.SemiFinishedGoodRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	movements ledger.StockMovementRepository,
	items ledger.ItemQuantityStore,
	purchases trade.PurchaseRepository,
	sales trade.SaleRepository,
	finishedGoods catalog.FinishedGoodRepository,
	semiFinishedGoods catalog.SemiFinishedGoodRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		movements:         movements,
		items:             items,
		purchases:         purchases,
		sales:             sales,
		finishedGoods:     finishedGoods,
		semiFinishedGoods: semiFinishedGoods,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Movements returns the stock movement repository.
func (s *NoOpTransactionScope) Movements() ledger.StockMovementRepository {
	return s.movements
}

// Items returns the item quantity store.
func (s *NoOpTransactionScope) Items() ledger.ItemQuantityStore {
	return s.items
}

// Purchases returns the purchase repository.
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository {
	return s.purchases
}

// Sales returns the sale repository.
func (s *NoOpTransactionScope) Sales() trade.SaleRepository {
	return s.sales
}

// FinishedGoods returns the finished good repository.
func (s *NoOpTransactionScope) FinishedGoods() catalog.FinishedGoodRepository {
	return s.finishedGoods
}

// SemiFinishedGoods returns the semi-finished good repository.
func (s *NoOpTransactionScope) SemiFinishedGoods() catalog.SemiFinishedGoodRepository {
	return s.semiFinishedGoods
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

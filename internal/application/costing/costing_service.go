package costing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/costing"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// CostCache caches computed unit costs keyed by finished good ID
type CostCache interface {
	// Get returns the cached unit cost and whether it was present
	Get(ctx context.Context, finishedGoodID uuid.UUID) (decimal.Decimal, bool, error)

	// Set stores the unit cost for a finished good
	Set(ctx context.Context, finishedGoodID uuid.UUID, cost decimal.Decimal) error

	// Invalidate removes one cached entry
	Invalidate(ctx context.Context, finishedGoodID uuid.UUID) error

	// InvalidateAll removes all cached entries
	InvalidateAll(ctx context.Context) error
}

// CostingService serves unit cost and margin queries over finished goods.
// Results are cached; the cache is invalidated through domain events when
// supplier prices change or new goods are registered.
type CostingService struct {
	finishedGoods catalog.FinishedGoodRepository
	cache         CostCache
}

// NewCostingService creates a new CostingService
func NewCostingService(finishedGoods catalog.FinishedGoodRepository, cache CostCache) *CostingService {
	return &CostingService{
		finishedGoods: finishedGoods,
		cache:         cache,
	}
}

// UnitCost returns the rolled-up material cost of one unit of a finished
// good. Returns ErrNotFound if the good does not exist; a good with zero
// produced quantity reports a unit cost of zero.
func (s *CostingService) UnitCost(ctx context.Context, finishedGoodID uuid.UUID) (*UnitCostResponse, error) {
	if finishedGoodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ID", "Finished good ID is required")
	}

	if s.cache != nil {
		if cost, ok, err := s.cache.Get(ctx, finishedGoodID); err == nil && ok {
			return &UnitCostResponse{
				FinishedGoodID: finishedGoodID,
				UnitCost:       cost,
				FromCache:      true,
			}, nil
		}
	}

	good, err := s.finishedGoods.FindByIDWithBOM(ctx, finishedGoodID)
	if err != nil {
		return nil, err
	}

	cost := costing.ComputeUnitCost(good)

	if s.cache != nil {
		// Cache write failures degrade to recomputation, not request failure
		_ = s.cache.Set(ctx, finishedGoodID, cost)
	}

	return &UnitCostResponse{
		FinishedGoodID: good.ID,
		ProductionCode: good.ProductionCode,
		UnitCost:       cost,
	}, nil
}

// Margin returns the per-unit margin of a finished good at its current
// selling price.
func (s *CostingService) Margin(ctx context.Context, finishedGoodID uuid.UUID) (*MarginResponse, error) {
	good, err := s.finishedGoods.FindByIDWithBOM(ctx, finishedGoodID)
	if err != nil {
		return nil, err
	}

	cost := costing.ComputeUnitCost(good)

	return &MarginResponse{
		FinishedGoodID: good.ID,
		ProductionCode: good.ProductionCode,
		Name:           good.Name,
		UnitCost:       cost,
		SellingPrice:   good.SellingPrice,
		UnitMargin:     costing.UnitMargin(good, cost),
	}, nil
}

// RegisterEventHandlers subscribes the cache invalidation handlers. A
// supplier price change can affect any number of finished goods, so it
// flushes the whole cache; a newly created good only needs its own key
// dropped.
func (s *CostingService) RegisterEventHandlers(subscriber shared.EventSubscriber) {
	if s.cache == nil {
		return
	}

	subscriber.Subscribe(catalog.EventTypeSupplierPriceChanged, func(ctx context.Context, _ shared.DomainEvent) error {
		return s.cache.InvalidateAll(ctx)
	})

	subscriber.Subscribe(catalog.EventTypeFinishedGoodCreated, func(ctx context.Context, event shared.DomainEvent) error {
		return s.cache.Invalidate(ctx, event.AggregateID())
	})
}

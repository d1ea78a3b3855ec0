package costing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/shared"
)

type fakeFinishedGoodRepo struct {
	goods map[uuid.UUID]*catalog.FinishedGood
}

func newFakeFinishedGoodRepo() *fakeFinishedGoodRepo {
	return &fakeFinishedGoodRepo{goods: make(map[uuid.UUID]*catalog.FinishedGood)}
}

func (r *fakeFinishedGoodRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.FinishedGood, error) {
	good, ok := r.goods[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return good, nil
}

func (r *fakeFinishedGoodRepo) FindByIDWithBOM(ctx context.Context, id uuid.UUID) (*catalog.FinishedGood, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeFinishedGoodRepo) FindByProductionCode(_ context.Context, code string) (*catalog.FinishedGood, error) {
	for _, good := range r.goods {
		if good.ProductionCode == code {
			return good, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFinishedGoodRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.FinishedGood, error) {
	out := make([]catalog.FinishedGood, 0, len(r.goods))
	for _, good := range r.goods {
		out = append(out, *good)
	}
	return out, nil
}

func (r *fakeFinishedGoodRepo) Save(_ context.Context, good *catalog.FinishedGood) error {
	r.goods[good.ID] = good
	return nil
}

func (r *fakeFinishedGoodRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.goods)), nil
}

type memCache struct {
	entries map[uuid.UUID]decimal.Decimal
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[uuid.UUID]decimal.Decimal)}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (decimal.Decimal, bool, error) {
	cost, ok := c.entries[id]
	return cost, ok, nil
}

func (c *memCache) Set(_ context.Context, id uuid.UUID, cost decimal.Decimal) error {
	c.entries[id] = cost
	return nil
}

func (c *memCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(c.entries, id)
	return nil
}

func (c *memCache) InvalidateAll(_ context.Context) error {
	c.entries = make(map[uuid.UUID]decimal.Decimal)
	return nil
}

type fakeSubscriber struct {
	handlers map[string][]shared.EventHandler
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{handlers: make(map[string][]shared.EventHandler)}
}

func (s *fakeSubscriber) Subscribe(eventType string, handler shared.EventHandler) {
	s.handlers[eventType] = append(s.handlers[eventType], handler)
}

func (s *fakeSubscriber) dispatch(ctx context.Context, event shared.DomainEvent) {
	for _, handler := range s.handlers[event.EventType()] {
		_ = handler(ctx, event)
	}
}

func seedFinishedGood(t *testing.T, repo *fakeFinishedGoodRepo, quantity int64) *catalog.FinishedGood {
	t.Helper()

	rmA, err := catalog.NewRawMaterial(uuid.New(), uuid.New(), "Titanium Dioxide",
		decimal.NewFromInt(1000), decimal.Zero)
	require.NoError(t, err)
	rmB, err := catalog.NewRawMaterial(uuid.New(), uuid.New(), "Resin",
		decimal.NewFromInt(2000), decimal.Zero)
	require.NoError(t, err)

	good, err := catalog.NewFinishedGood(uuid.New(), "FG-"+uuid.NewString()[:8], "Interior White 5L",
		time.Now(), "B-1", catalog.QualityGradeA, decimal.NewFromInt(1), decimal.NewFromInt(1500),
		[]catalog.ComponentLine{
			catalog.RawMaterialLine(rmA.ID, decimal.NewFromInt(5)),
			catalog.RawMaterialLine(rmB.ID, decimal.NewFromInt(3)),
		})
	require.NoError(t, err)
	good.Quantity = decimal.NewFromInt(quantity)
	good.Details[0].RawMaterial = rmA
	good.Details[1].RawMaterial = rmB

	require.NoError(t, repo.Save(context.Background(), good))
	return good
}

func TestCostingService_UnitCost(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches", func(t *testing.T) {
		repo := newFakeFinishedGoodRepo()
		cache := newMemCache()
		service := NewCostingService(repo, cache)
		good := seedFinishedGood(t, repo, 10)

		resp, err := service.UnitCost(ctx, good.ID)
		require.NoError(t, err)
		// (5*1000 + 3*2000) / 10 = 1100
		assert.Equal(t, "1100", resp.UnitCost.String())
		assert.False(t, resp.FromCache)

		resp, err = service.UnitCost(ctx, good.ID)
		require.NoError(t, err)
		assert.Equal(t, "1100", resp.UnitCost.String())
		assert.True(t, resp.FromCache)
	})

	t.Run("unknown good fails with not found", func(t *testing.T) {
		service := NewCostingService(newFakeFinishedGoodRepo(), newMemCache())

		_, err := service.UnitCost(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("zero quantity yields zero cost", func(t *testing.T) {
		repo := newFakeFinishedGoodRepo()
		service := NewCostingService(repo, newMemCache())
		good := seedFinishedGood(t, repo, 0)

		resp, err := service.UnitCost(ctx, good.ID)
		require.NoError(t, err)
		assert.True(t, resp.UnitCost.IsZero())
	})

	t.Run("works without a cache", func(t *testing.T) {
		repo := newFakeFinishedGoodRepo()
		service := NewCostingService(repo, nil)
		good := seedFinishedGood(t, repo, 10)

		resp, err := service.UnitCost(ctx, good.ID)
		require.NoError(t, err)
		assert.Equal(t, "1100", resp.UnitCost.String())
	})
}

func TestCostingService_Margin(t *testing.T) {
	repo := newFakeFinishedGoodRepo()
	service := NewCostingService(repo, newMemCache())
	good := seedFinishedGood(t, repo, 10)

	resp, err := service.Margin(context.Background(), good.ID)
	require.NoError(t, err)
	assert.Equal(t, "1100", resp.UnitCost.String())
	assert.Equal(t, "1500", resp.SellingPrice.String())
	assert.Equal(t, "400", resp.UnitMargin.String())
}

func TestCostingService_CacheInvalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("supplier price change flushes the cache", func(t *testing.T) {
		repo := newFakeFinishedGoodRepo()
		cache := newMemCache()
		service := NewCostingService(repo, cache)
		subscriber := newFakeSubscriber()
		service.RegisterEventHandlers(subscriber)

		good := seedFinishedGood(t, repo, 10)
		_, err := service.UnitCost(ctx, good.ID)
		require.NoError(t, err)

		material := good.Details[0].RawMaterial
		oldPrice := material.SupplierPrice
		require.NoError(t, material.ChangeSupplierPrice(decimal.NewFromInt(3000)))
		subscriber.dispatch(ctx, catalog.NewSupplierPriceChangedEvent(material, oldPrice, material.SupplierPrice))

		resp, err := service.UnitCost(ctx, good.ID)
		require.NoError(t, err)
		assert.False(t, resp.FromCache)
		// (5*3000 + 3*2000) / 10 = 2100
		assert.Equal(t, "2100", resp.UnitCost.String())
	})

	t.Run("new finished good drops its own key", func(t *testing.T) {
		repo := newFakeFinishedGoodRepo()
		cache := newMemCache()
		service := NewCostingService(repo, cache)
		subscriber := newFakeSubscriber()
		service.RegisterEventHandlers(subscriber)

		good := seedFinishedGood(t, repo, 10)
		require.NoError(t, cache.Set(ctx, good.ID, decimal.NewFromInt(1)))

		subscriber.dispatch(ctx, catalog.NewFinishedGoodCreatedEvent(good, good.Quantity))

		_, ok, err := cache.Get(ctx, good.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

type fakeRawMaterialRepo struct {
	materials map[uuid.UUID]*catalog.RawMaterial
}

func newFakeRawMaterialRepo() *fakeRawMaterialRepo {
	return &fakeRawMaterialRepo{materials: make(map[uuid.UUID]*catalog.RawMaterial)}
}

func (r *fakeRawMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return m, nil
}

func (r *fakeRawMaterialRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]catalog.RawMaterial, error) {
	var out []catalog.RawMaterial
	for _, m := range r.materials {
		if m.SupplierID == supplierID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeRawMaterialRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.RawMaterial, error) {
	out := make([]catalog.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeRawMaterialRepo) Save(_ context.Context, material *catalog.RawMaterial) error {
	r.materials[material.ID] = material
	return nil
}

func (r *fakeRawMaterialRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.materials)), nil
}

type itemKey struct {
	itemType ledger.ItemType
	itemID   uuid.UUID
}

type fakeQuantityStore struct {
	quantities map[itemKey]decimal.Decimal
}

func newFakeQuantityStore() *fakeQuantityStore {
	return &fakeQuantityStore{quantities: make(map[itemKey]decimal.Decimal)}
}

func (s *fakeQuantityStore) Quantity(_ context.Context, itemType ledger.ItemType, itemID uuid.UUID) (decimal.Decimal, error) {
	qty, ok := s.quantities[itemKey{itemType, itemID}]
	if !ok {
		return decimal.Zero, shared.ErrNotFound
	}
	return qty, nil
}

func (s *fakeQuantityStore) QuantityForUpdate(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) (decimal.Decimal, error) {
	return s.Quantity(ctx, itemType, itemID)
}

func (s *fakeQuantityStore) SetQuantity(_ context.Context, itemType ledger.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	s.quantities[itemKey{itemType, itemID}] = quantity
	return nil
}

type fakeMovementRepo struct {
	movements []ledger.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, movement *ledger.StockMovement) error {
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.StockMovement, error) {
	for i := range r.movements {
		if r.movements[i].ID == id {
			return &r.movements[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMovementRepo) FindByItem(_ context.Context, itemType ledger.ItemType, itemID uuid.UUID, _ shared.Filter) ([]ledger.StockMovement, error) {
	var out []ledger.StockMovement
	for _, m := range r.movements {
		if m.ItemType == itemType && m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) FindByRef(_ context.Context, ref ledger.DocumentRef) ([]ledger.StockMovement, error) {
	var out []ledger.StockMovement
	for _, m := range r.movements {
		if m.Ref.Kind == ref.Kind && m.Ref.DocumentID != nil && ref.DocumentID != nil && *m.Ref.DocumentID == *ref.DocumentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumQuantity(_ context.Context, itemType ledger.ItemType, itemID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.movements {
		if r.movements[i].ItemType == itemType && r.movements[i].ItemID == itemID {
			sum = sum.Add(r.movements[i].SignedQuantity())
		}
	}
	return sum, nil
}

func (r *fakeMovementRepo) CountByItem(_ context.Context, itemType ledger.ItemType, itemID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.movements {
		if m.ItemType == itemType && m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// fakeSemiFinishedRepo seeds a zero quantity row on Save, mirroring the
// insert of the semi-finished good inside the creation transaction.
type fakeSemiFinishedRepo struct {
	goods map[uuid.UUID]*catalog.SemiFinishedGood
	items *fakeQuantityStore
}

func newFakeSemiFinishedRepo(items *fakeQuantityStore) *fakeSemiFinishedRepo {
	return &fakeSemiFinishedRepo{goods: make(map[uuid.UUID]*catalog.SemiFinishedGood), items: items}
}

func (r *fakeSemiFinishedRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.SemiFinishedGood, error) {
	g, ok := r.goods[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return g, nil
}

func (r *fakeSemiFinishedRepo) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*catalog.SemiFinishedGood, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeSemiFinishedRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.SemiFinishedGood, error) {
	out := make([]catalog.SemiFinishedGood, 0, len(r.goods))
	for _, g := range r.goods {
		out = append(out, *g)
	}
	return out, nil
}

func (r *fakeSemiFinishedRepo) Save(ctx context.Context, good *catalog.SemiFinishedGood) error {
	if _, exists := r.goods[good.ID]; !exists {
		if err := r.items.SetQuantity(ctx, ledger.ItemSemiFinishedGood, good.ID, decimal.Zero); err != nil {
			return err
		}
	}
	r.goods[good.ID] = good
	return nil
}

func (r *fakeSemiFinishedRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.goods)), nil
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func TestCatalogService_RawMaterials(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("create and get", func(t *testing.T) {
		repo := newFakeRawMaterialRepo()
		service := NewCatalogService(nil, repo, nil, nil)

		created, err := service.CreateRawMaterial(ctx, ownerID, CreateRawMaterialRequest{
			SupplierID:    uuid.New(),
			Name:          "Titanium Dioxide",
			SupplierPrice: decimal.NewFromInt(1000),
			SellingPrice:  decimal.NewFromInt(1500),
		})
		require.NoError(t, err)
		assert.True(t, created.Quantity.IsZero())

		got, err := service.GetRawMaterial(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, got.Name)
	})

	t.Run("create propagates validation errors", func(t *testing.T) {
		service := NewCatalogService(nil, newFakeRawMaterialRepo(), nil, nil)

		_, err := service.CreateRawMaterial(ctx, ownerID, CreateRawMaterialRequest{
			SupplierID:    uuid.New(),
			Name:          "Resin",
			SupplierPrice: decimal.Zero,
		})
		require.Error(t, err)
	})

	t.Run("supplier price change publishes the invalidation event", func(t *testing.T) {
		repo := newFakeRawMaterialRepo()
		service := NewCatalogService(nil, repo, nil, nil)
		publisher := &capturingPublisher{}
		service.SetEventPublisher(publisher)

		created, err := service.CreateRawMaterial(ctx, ownerID, CreateRawMaterialRequest{
			SupplierID:    uuid.New(),
			Name:          "Resin",
			SupplierPrice: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)

		newPrice := decimal.NewFromInt(1200)
		updated, err := service.ChangeRawMaterialPrices(ctx, created.ID, ChangePricesRequest{
			SupplierPrice: &newPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, "1200", updated.SupplierPrice.String())

		require.Len(t, publisher.events, 1)
		assert.Equal(t, catalog.EventTypeSupplierPriceChanged, publisher.events[0].EventType())
	})

	t.Run("unknown material fails with not found", func(t *testing.T) {
		service := NewCatalogService(nil, newFakeRawMaterialRepo(), nil, nil)

		_, err := service.GetRawMaterial(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

type semiFinishedFixture struct {
	service   *CatalogService
	movements *fakeMovementRepo
	items     *fakeQuantityStore
	goods     *fakeSemiFinishedRepo
}

func newSemiFinishedFixture() *semiFinishedFixture {
	items := newFakeQuantityStore()
	movements := &fakeMovementRepo{}
	goods := newFakeSemiFinishedRepo(items)
	scope := ledgerapp.NewNoOpTransactionScope(movements, items, nil, nil, nil, goods)
	return &semiFinishedFixture{
		service:   NewCatalogService(scope, nil, nil, goods),
		movements: movements,
		items:     items,
		goods:     goods,
	}
}

func TestCatalogService_SemiFinishedGoods(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("create consumes raw materials and records the batch", func(t *testing.T) {
		f := newSemiFinishedFixture()
		rawA, rawB := uuid.New(), uuid.New()
		require.NoError(t, f.items.SetQuantity(ctx, ledger.ItemRawMaterial, rawA, decimal.NewFromInt(100)))
		require.NoError(t, f.items.SetQuantity(ctx, ledger.ItemRawMaterial, rawB, decimal.NewFromInt(50)))

		created, err := f.service.CreateSemiFinishedGood(ctx, ownerID, CreateSemiFinishedGoodRequest{
			Name:     "White Base",
			Quantity: decimal.NewFromInt(10),
			Lines: []BomLineRequest{
				{RawMaterialID: rawA, Quantity: decimal.NewFromInt(4)},
				{RawMaterialID: rawB, Quantity: decimal.NewFromInt(2)},
			},
		})
		require.NoError(t, err)
		assert.Len(t, created.Lines, 2)
		assert.Equal(t, "10", created.Quantity.String())

		qtyA, err := f.items.Quantity(ctx, ledger.ItemRawMaterial, rawA)
		require.NoError(t, err)
		assert.Equal(t, "96", qtyA.String())

		qtyB, err := f.items.Quantity(ctx, ledger.ItemRawMaterial, rawB)
		require.NoError(t, err)
		assert.Equal(t, "48", qtyB.String())

		batchQty, err := f.items.Quantity(ctx, ledger.ItemSemiFinishedGood, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "10", batchQty.String())

		batchMovements, err := f.movements.FindByRef(ctx, ledger.ProductionRef(created.ID))
		require.NoError(t, err)
		assert.Len(t, batchMovements, 3)
	})

	t.Run("rejects a recipe consuming more than the available stock", func(t *testing.T) {
		f := newSemiFinishedFixture()
		rawID := uuid.New()
		require.NoError(t, f.items.SetQuantity(ctx, ledger.ItemRawMaterial, rawID, decimal.NewFromInt(5)))

		_, err := f.service.CreateSemiFinishedGood(ctx, ownerID, CreateSemiFinishedGoodRequest{
			Name:     "White Base",
			Quantity: decimal.NewFromInt(10),
			Lines: []BomLineRequest{
				{RawMaterialID: rawID, Quantity: decimal.NewFromInt(100)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		// The consuming movement was never written
		qty, err := f.items.Quantity(ctx, ledger.ItemRawMaterial, rawID)
		require.NoError(t, err)
		assert.Equal(t, "5", qty.String())
		count, err := f.movements.CountByItem(ctx, ledger.ItemRawMaterial, rawID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("unknown raw material fails with not found", func(t *testing.T) {
		f := newSemiFinishedFixture()

		_, err := f.service.CreateSemiFinishedGood(ctx, ownerID, CreateSemiFinishedGoodRequest{
			Name:     "White Base",
			Quantity: decimal.NewFromInt(10),
			Lines: []BomLineRequest{
				{RawMaterialID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects empty recipe", func(t *testing.T) {
		f := newSemiFinishedFixture()

		_, err := f.service.CreateSemiFinishedGood(ctx, ownerID, CreateSemiFinishedGoodRequest{
			Name:     "White Base",
			Quantity: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.Empty(t, f.movements.movements)
	})
}

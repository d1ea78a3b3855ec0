package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

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

func newTestLedgerService() (*LedgerService, *fakeMovementRepo, *fakeQuantityStore) {
	movements := &fakeMovementRepo{}
	items := newFakeQuantityStore()
	scope := NewNoOpTransactionScope(movements, items, nil, nil, nil, nil)
	return NewLedgerService(scope, movements), movements, items
}

func TestLedgerService_AppendMovement(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("inbound movement updates balance", func(t *testing.T) {
		service, movements, items := newTestLedgerService()
		itemID := uuid.New()
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemRawMaterial, itemID, decimal.Zero))

		resp, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType:  ledger.MovementPurchaseIn,
			ItemType:      ledger.ItemRawMaterial,
			ItemID:        itemID,
			Quantity:      decimal.NewFromInt(50),
			RefKind:       ledger.RefPurchase,
			RefDocumentID: ptrUUID(uuid.New()),
		})

		require.NoError(t, err)
		assert.Equal(t, "50", resp.NewBalance.String())
		assert.Len(t, movements.movements, 1)

		stored, err := items.Quantity(ctx, ledger.ItemRawMaterial, itemID)
		require.NoError(t, err)
		assert.Equal(t, "50", stored.String())
	})

	t.Run("unknown item fails with not found", func(t *testing.T) {
		service, _, _ := newTestLedgerService()

		_, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType:  ledger.MovementPurchaseIn,
			ItemType:      ledger.ItemRawMaterial,
			ItemID:        uuid.New(),
			Quantity:      decimal.NewFromInt(5),
			RefKind:       ledger.RefPurchase,
			RefDocumentID: ptrUUID(uuid.New()),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("outbound past zero fails without partial write", func(t *testing.T) {
		service, movements, items := newTestLedgerService()
		itemID := uuid.New()
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemFinishedGood, itemID, decimal.NewFromInt(3)))

		_, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType:  ledger.MovementSaleOut,
			ItemType:      ledger.ItemFinishedGood,
			ItemID:        itemID,
			Quantity:      decimal.NewFromInt(4),
			RefKind:       ledger.RefSale,
			RefDocumentID: ptrUUID(uuid.New()),
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Empty(t, movements.movements)

		stored, err := items.Quantity(ctx, ledger.ItemFinishedGood, itemID)
		require.NoError(t, err)
		assert.Equal(t, "3", stored.String())
	})

	t.Run("outbound to exactly zero succeeds", func(t *testing.T) {
		service, _, items := newTestLedgerService()
		itemID := uuid.New()
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemFinishedGood, itemID, decimal.NewFromInt(3)))

		resp, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType:  ledger.MovementSaleOut,
			ItemType:      ledger.ItemFinishedGood,
			ItemID:        itemID,
			Quantity:      decimal.NewFromInt(3),
			RefKind:       ledger.RefSale,
			RefDocumentID: ptrUUID(uuid.New()),
		})

		require.NoError(t, err)
		assert.True(t, resp.NewBalance.IsZero())
	})

	t.Run("negative adjustment may pass below zero", func(t *testing.T) {
		service, _, items := newTestLedgerService()
		itemID := uuid.New()
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemRawMaterial, itemID, decimal.NewFromInt(2)))

		resp, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType: ledger.MovementAdjustment,
			ItemType:     ledger.ItemRawMaterial,
			ItemID:       itemID,
			Quantity:     decimal.NewFromInt(-5),
			Note:         "stocktake correction",
		})

		require.NoError(t, err)
		assert.Equal(t, "-3", resp.NewBalance.String())
	})

	t.Run("invalid quantity is rejected before any write", func(t *testing.T) {
		service, movements, _ := newTestLedgerService()

		_, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType:  ledger.MovementPurchaseIn,
			ItemType:      ledger.ItemRawMaterial,
			ItemID:        uuid.New(),
			Quantity:      decimal.Zero,
			RefKind:       ledger.RefPurchase,
			RefDocumentID: ptrUUID(uuid.New()),
		})

		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
		assert.Empty(t, movements.movements)
	})
}

func TestLedgerService_CurrentStock(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("equals sum of signed movements", func(t *testing.T) {
		service, _, items := newTestLedgerService()
		itemID := uuid.New()
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemRawMaterial, itemID, decimal.Zero))

		appends := []AppendMovementRequest{
			{MovementType: ledger.MovementPurchaseIn, Quantity: decimal.NewFromInt(10), RefKind: ledger.RefPurchase, RefDocumentID: ptrUUID(uuid.New())},
			{MovementType: ledger.MovementProductionOut, Quantity: decimal.NewFromInt(4), RefKind: ledger.RefProduction, RefDocumentID: ptrUUID(uuid.New())},
			{MovementType: ledger.MovementAdjustment, Quantity: decimal.NewFromInt(-1)},
		}
		for _, req := range appends {
			req.ItemType = ledger.ItemRawMaterial
			req.ItemID = itemID
			_, err := service.AppendMovement(ctx, actorID, req)
			require.NoError(t, err)
		}

		stock, err := service.CurrentStock(ctx, ledger.ItemRawMaterial, itemID)
		require.NoError(t, err)
		assert.Equal(t, "5", stock.Quantity.String())

		stored, err := items.Quantity(ctx, ledger.ItemRawMaterial, itemID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(stored))
	})

	t.Run("item with no movements has zero stock", func(t *testing.T) {
		service, _, _ := newTestLedgerService()

		stock, err := service.CurrentStock(ctx, ledger.ItemRawMaterial, uuid.New())
		require.NoError(t, err)
		assert.True(t, stock.Quantity.IsZero())
	})

	t.Run("rejects invalid item type", func(t *testing.T) {
		service, _, _ := newTestLedgerService()

		_, err := service.CurrentStock(ctx, ledger.ItemType("WIDGET"), uuid.New())
		require.Error(t, err)
	})
}

func TestLedgerService_VerifyConsistency(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("consistent after appends", func(t *testing.T) {
		service, _, items := newTestLedgerService()
		itemID := uuid.New()
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemRawMaterial, itemID, decimal.Zero))

		_, err := service.AppendMovement(ctx, actorID, AppendMovementRequest{
			MovementType:  ledger.MovementPurchaseIn,
			ItemType:      ledger.ItemRawMaterial,
			ItemID:        itemID,
			Quantity:      decimal.NewFromInt(7),
			RefKind:       ledger.RefPurchase,
			RefDocumentID: ptrUUID(uuid.New()),
		})
		require.NoError(t, err)

		assert.NoError(t, service.VerifyConsistency(ctx, ledger.ItemRawMaterial, itemID))
	})

	t.Run("divergence is reported", func(t *testing.T) {
		service, _, items := newTestLedgerService()
		itemID := uuid.New()
		// Quantity written outside the ledger path
		require.NoError(t, items.SetQuantity(ctx, ledger.ItemRawMaterial, itemID, decimal.NewFromInt(9)))

		err := service.VerifyConsistency(ctx, ledger.ItemRawMaterial, itemID)
		assert.ErrorIs(t, err, shared.ErrInconsistentLedger)
	})
}

func ptrUUID(id uuid.UUID) *uuid.UUID {
	return &id
}

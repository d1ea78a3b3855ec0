package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintfactory/backend/internal/domain/shared"
)

func TestMovementType_Direction(t *testing.T) {
	inbound := []MovementType{MovementPurchaseIn, MovementProductionIn, MovementReturnIn}
	outbound := []MovementType{MovementSaleOut, MovementProductionOut}

	for _, mt := range inbound {
		assert.True(t, mt.IsInbound(), string(mt))
		assert.False(t, mt.IsOutbound(), string(mt))
	}
	for _, mt := range outbound {
		assert.True(t, mt.IsOutbound(), string(mt))
		assert.False(t, mt.IsInbound(), string(mt))
	}

	assert.False(t, MovementAdjustment.IsInbound())
	assert.False(t, MovementAdjustment.IsOutbound())
	assert.False(t, MovementType("TRANSFER").IsValid())
}

func TestNewStockMovement(t *testing.T) {
	itemID := uuid.New()
	actorID := uuid.New()

	t.Run("creates inbound movement", func(t *testing.T) {
		movement, err := NewStockMovement(MovementPurchaseIn, ItemRawMaterial, itemID,
			decimal.NewFromInt(50), PurchaseRef(uuid.New()), actorID, "")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, movement.ID)
		assert.Equal(t, "50", movement.SignedQuantity().String())
	})

	t.Run("outbound movement has negative signed quantity", func(t *testing.T) {
		movement, err := NewStockMovement(MovementSaleOut, ItemFinishedGood, itemID,
			decimal.NewFromInt(3), SaleRef(uuid.New()), actorID, "")

		require.NoError(t, err)
		assert.Equal(t, "-3", movement.SignedQuantity().String())
	})

	t.Run("adjustment carries its own sign", func(t *testing.T) {
		movement, err := NewStockMovement(MovementAdjustment, ItemRawMaterial, itemID,
			decimal.NewFromInt(-7), NoRef(), actorID, "stocktake correction")

		require.NoError(t, err)
		assert.Equal(t, "-7", movement.SignedQuantity().String())
	})

	t.Run("rejects zero adjustment", func(t *testing.T) {
		_, err := NewStockMovement(MovementAdjustment, ItemRawMaterial, itemID,
			decimal.Zero, NoRef(), actorID, "")

		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("rejects non-positive quantity for other types", func(t *testing.T) {
		for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
			_, err := NewStockMovement(MovementPurchaseIn, ItemRawMaterial, itemID,
				qty, PurchaseRef(uuid.New()), actorID, "")

			assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
		}
	})

	t.Run("rejects invalid movement type", func(t *testing.T) {
		_, err := NewStockMovement(MovementType("TRANSFER"), ItemRawMaterial, itemID,
			decimal.NewFromInt(1), NoRef(), actorID, "")

		require.Error(t, err)
	})

	t.Run("rejects invalid item type", func(t *testing.T) {
		_, err := NewStockMovement(MovementPurchaseIn, ItemType("WIDGET"), itemID,
			decimal.NewFromInt(1), PurchaseRef(uuid.New()), actorID, "")

		require.Error(t, err)
	})

	t.Run("rejects nil actor", func(t *testing.T) {
		_, err := NewStockMovement(MovementPurchaseIn, ItemRawMaterial, itemID,
			decimal.NewFromInt(1), PurchaseRef(uuid.New()), uuid.Nil, "")

		require.Error(t, err)
	})

	t.Run("rejects mismatched document ref", func(t *testing.T) {
		_, err := NewStockMovement(MovementPurchaseIn, ItemRawMaterial, itemID,
			decimal.NewFromInt(1), DocumentRef{Kind: RefPurchase}, actorID, "")

		require.Error(t, err)
	})
}

func TestDocumentRef_Valid(t *testing.T) {
	id := uuid.New()

	assert.True(t, PurchaseRef(id).Valid())
	assert.True(t, SaleRef(id).Valid())
	assert.True(t, ReturnRef(id).Valid())
	assert.True(t, ProductionRef(id).Valid())
	assert.True(t, NoRef().Valid())

	assert.False(t, DocumentRef{Kind: RefSale}.Valid())
	assert.False(t, DocumentRef{Kind: RefNone, DocumentID: &id}.Valid())
	assert.False(t, DocumentRef{Kind: RefKind("VOUCHER"), DocumentID: &id}.Valid())

	nilID := uuid.Nil
	assert.False(t, DocumentRef{Kind: RefPurchase, DocumentID: &nilID}.Valid())
}

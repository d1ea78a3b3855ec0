package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

func TestDocumentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{StatusDraft, StatusOngoing, true},
		{StatusDraft, StatusCanceled, true},
		{StatusDraft, StatusFinished, false},
		{StatusOngoing, StatusFinished, true},
		{StatusOngoing, StatusCanceled, true},
		{StatusOngoing, StatusDraft, false},
		{StatusFinished, StatusCanceled, false},
		{StatusFinished, StatusOngoing, false},
		{StatusCanceled, StatusOngoing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}

	assert.True(t, StatusFinished.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.False(t, StatusOngoing.IsTerminal())
}

func TestNewPurchase(t *testing.T) {
	ownerID := uuid.New()
	supplierID := uuid.New()

	t.Run("creates draft purchase", func(t *testing.T) {
		purchase, err := NewPurchase(ownerID, "PO-2024-001", supplierID, "ChemSupply Ltd")

		require.NoError(t, err)
		assert.Equal(t, StatusDraft, purchase.Status)
		assert.True(t, purchase.TotalAmount.IsZero())
		assert.Len(t, purchase.GetDomainEvents(), 1)
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewPurchase(ownerID, "", supplierID, "ChemSupply Ltd")
		require.Error(t, err)
	})

	t.Run("fails with nil supplier", func(t *testing.T) {
		_, err := NewPurchase(ownerID, "PO-1", uuid.Nil, "ChemSupply Ltd")
		require.Error(t, err)
	})
}

func TestPurchase_Items(t *testing.T) {
	t.Run("add item recomputes subtotal and total", func(t *testing.T) {
		purchase := newTestPurchase(t)

		item, err := purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Titanium Dioxide",
			decimal.NewFromInt(50), decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.Equal(t, "50000", item.Subtotal.String())

		_, err = purchase.AddItem(ledger.ItemPaintAccessory, uuid.New(), "Roller",
			decimal.NewFromInt(10), decimal.NewFromInt(300))
		require.NoError(t, err)

		assert.Equal(t, "53000", purchase.TotalAmount.String())
	})

	t.Run("rejects duplicate item", func(t *testing.T) {
		purchase := newTestPurchase(t)
		itemID := uuid.New()

		_, err := purchase.AddItem(ledger.ItemRawMaterial, itemID, "Resin",
			decimal.NewFromInt(5), decimal.NewFromInt(100))
		require.NoError(t, err)

		_, err = purchase.AddItem(ledger.ItemRawMaterial, itemID, "Resin",
			decimal.NewFromInt(5), decimal.NewFromInt(100))
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		purchase := newTestPurchase(t)

		_, err := purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Resin",
			decimal.Zero, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("update quantity recomputes total", func(t *testing.T) {
		purchase := newTestPurchase(t)
		item, err := purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Resin",
			decimal.NewFromInt(5), decimal.NewFromInt(100))
		require.NoError(t, err)

		require.NoError(t, purchase.UpdateItemQuantity(item.ID, decimal.NewFromInt(8)))
		assert.Equal(t, "800", purchase.TotalAmount.String())
	})

	t.Run("remove item recomputes total", func(t *testing.T) {
		purchase := newTestPurchase(t)
		item, err := purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Resin",
			decimal.NewFromInt(5), decimal.NewFromInt(100))
		require.NoError(t, err)

		require.NoError(t, purchase.RemoveItem(item.ID))
		assert.True(t, purchase.TotalAmount.IsZero())
	})

	t.Run("items frozen after submit", func(t *testing.T) {
		purchase := newSubmittedPurchase(t)

		_, err := purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Resin",
			decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.Error(t, err)
		assert.False(t, purchase.CanModify())
	})
}

func TestPurchase_Lifecycle(t *testing.T) {
	t.Run("submit requires items", func(t *testing.T) {
		purchase := newTestPurchase(t)

		err := purchase.Submit()
		require.Error(t, err)
	})

	t.Run("full happy path", func(t *testing.T) {
		purchase := newSubmittedPurchase(t)
		assert.Equal(t, StatusOngoing, purchase.Status)
		assert.NotNil(t, purchase.SubmittedAt)

		require.NoError(t, purchase.Finish())
		assert.Equal(t, StatusFinished, purchase.Status)
		assert.NotNil(t, purchase.FinishedAt)
	})

	t.Run("cannot finish a draft", func(t *testing.T) {
		purchase := newTestPurchase(t)
		require.Error(t, purchase.Finish())
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		purchase := newSubmittedPurchase(t)
		require.Error(t, purchase.Cancel(""))
		require.NoError(t, purchase.Cancel("supplier out of stock"))
		assert.Equal(t, StatusCanceled, purchase.Status)
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		purchase := newSubmittedPurchase(t)
		require.NoError(t, purchase.Finish())

		require.Error(t, purchase.Cancel("too late"))
		require.Error(t, purchase.Submit())
	})
}

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	purchase, err := NewPurchase(uuid.New(), "PO-"+uuid.NewString()[:8], uuid.New(), "ChemSupply Ltd")
	require.NoError(t, err)
	return purchase
}

func newSubmittedPurchase(t *testing.T) *Purchase {
	t.Helper()
	purchase := newTestPurchase(t)
	_, err := purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Titanium Dioxide",
		decimal.NewFromInt(50), decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, purchase.Submit())
	return purchase
}

// Integration tests for the stock ledger against a real PostgreSQL database.
// These exercise the row-locking append path that in-memory fakes cannot:
// two competing outbound movements must serialize on the item row and at
// most one may succeed when stock only covers one of them.
package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
	"github.com/paintfactory/backend/internal/infrastructure/persistence"
)

type ledgerTestSetup struct {
	DB      *TestDB
	Service *ledgerapp.LedgerService
	ActorID uuid.UUID
}

func newLedgerTestSetup(t *testing.T) *ledgerTestSetup {
	t.Helper()

	testDB := NewTestDB(t)
	movements := persistence.NewGormStockMovementRepository(testDB.DB)
	scope := persistence.NewGormTransactionScope(testDB.DB)

	return &ledgerTestSetup{
		DB:      testDB,
		Service: ledgerapp.NewLedgerService(scope, movements),
		ActorID: uuid.New(),
	}
}

func (s *ledgerTestSetup) receive(t *testing.T, itemID uuid.UUID, quantity string) {
	t.Helper()

	_, err := s.Service.AppendMovement(context.Background(), s.ActorID, ledgerapp.AppendMovementRequest{
		MovementType: ledger.MovementPurchaseIn,
		ItemType:     ledger.ItemRawMaterial,
		ItemID:       itemID,
		Quantity:     decimal.RequireFromString(quantity),
	})
	require.NoError(t, err)
}

func TestLedger_AppendAndCurrentStock(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	ctx := context.Background()
	material := setup.DB.SeedRawMaterial("Titanium Dioxide", decimal.NewFromInt(120))

	setup.receive(t, material.ID, "40")

	resp, err := setup.Service.AppendMovement(ctx, setup.ActorID, ledgerapp.AppendMovementRequest{
		MovementType: ledger.MovementProductionOut,
		ItemType:     ledger.ItemRawMaterial,
		ItemID:       material.ID,
		Quantity:     decimal.NewFromInt(15),
		RefKind:      ledger.RefProduction,
		RefDocumentID: func() *uuid.UUID {
			id := uuid.New()
			return &id
		}(),
	})
	require.NoError(t, err)
	assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(25)))

	stock, err := setup.Service.CurrentStock(ctx, ledger.ItemRawMaterial, material.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(25)))

	// Denormalized quantity on the item row follows the ledger
	require.NoError(t, setup.Service.VerifyConsistency(ctx, ledger.ItemRawMaterial, material.ID))
}

func TestLedger_RejectsOverdraw(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	ctx := context.Background()
	material := setup.DB.SeedRawMaterial("Resin Binder", decimal.NewFromInt(80))

	setup.receive(t, material.ID, "5")

	_, err := setup.Service.AppendMovement(ctx, setup.ActorID, ledgerapp.AppendMovementRequest{
		MovementType: ledger.MovementProductionOut,
		ItemType:     ledger.ItemRawMaterial,
		ItemID:       material.ID,
		Quantity:     decimal.NewFromInt(6),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// The failed append must leave nothing behind
	stock, err := setup.Service.CurrentStock(ctx, ledger.ItemRawMaterial, material.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)))
	require.NoError(t, setup.Service.VerifyConsistency(ctx, ledger.ItemRawMaterial, material.ID))
}

func TestLedger_ConcurrentOverdraw(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	ctx := context.Background()
	material := setup.DB.SeedRawMaterial("Solvent Base", decimal.NewFromInt(50))

	// Stock covers one of the two competing withdrawals, not both
	setup.receive(t, material.ID, "10")

	const workers = 2
	results := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := setup.Service.AppendMovement(ctx, setup.ActorID, ledgerapp.AppendMovementRequest{
				MovementType: ledger.MovementProductionOut,
				ItemType:     ledger.ItemRawMaterial,
				ItemID:       material.ID,
				Quantity:     decimal.NewFromInt(7),
			})
			results[idx] = err
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, shared.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one withdrawal should win the row lock")
	assert.Equal(t, 1, rejected, "the loser must fail the stock guard")

	stock, err := setup.Service.CurrentStock(ctx, ledger.ItemRawMaterial, material.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(3)))
	require.NoError(t, setup.Service.VerifyConsistency(ctx, ledger.ItemRawMaterial, material.ID))
}

func TestLedger_AdjustmentCarriesSign(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	ctx := context.Background()
	material := setup.DB.SeedRawMaterial("Pigment Yellow", decimal.NewFromInt(30))

	setup.receive(t, material.ID, "12")

	_, err := setup.Service.AppendMovement(ctx, setup.ActorID, ledgerapp.AppendMovementRequest{
		MovementType: ledger.MovementAdjustment,
		ItemType:     ledger.ItemRawMaterial,
		ItemID:       material.ID,
		Quantity:     decimal.NewFromInt(-2),
		Note:         "shrinkage after stocktake",
	})
	require.NoError(t, err)

	stock, err := setup.Service.CurrentStock(ctx, ledger.ItemRawMaterial, material.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)))
}

package costing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintfactory/backend/internal/domain/catalog"
)

func TestComputeUnitCost(t *testing.T) {
	t.Run("sums raw material lines and divides by batch quantity", func(t *testing.T) {
		rmA := testRawMaterial(t, 1000)
		rmB := testRawMaterial(t, 2000)

		good := testFinishedGood(t, 10, []catalog.ComponentLine{
			catalog.RawMaterialLine(rmA.ID, decimal.NewFromInt(5)),
			catalog.RawMaterialLine(rmB.ID, decimal.NewFromInt(3)),
		})
		good.Details[0].RawMaterial = rmA
		good.Details[1].RawMaterial = rmB

		// (5*1000 + 3*2000) / 10 = 1100
		assert.Equal(t, "1100", ComputeUnitCost(good).String())
	})

	t.Run("semi-finished line contributes its full recipe cost", func(t *testing.T) {
		rm := testRawMaterial(t, 1000)

		semi, err := catalog.NewSemiFinishedGood(uuid.New(), "White Base", decimal.NewFromInt(8), []catalog.BomLine{
			{RawMaterialID: rm.ID, Quantity: decimal.NewFromInt(4)},
		})
		require.NoError(t, err)
		semi.Details[0].RawMaterial = rm

		good := testFinishedGood(t, 4, []catalog.ComponentLine{
			catalog.SemiFinishedLine(semi.ID, decimal.NewFromInt(2)),
		})
		good.Details[0].SemiFinishedGood = semi

		// Recipe cost 4*1000 = 4000, divided by batch quantity 4
		assert.Equal(t, "1000", ComputeUnitCost(good).String())
	})

	t.Run("mixed BOM", func(t *testing.T) {
		rm := testRawMaterial(t, 500)

		semiRM := testRawMaterial(t, 1000)
		semi, err := catalog.NewSemiFinishedGood(uuid.New(), "Base", decimal.NewFromInt(8), []catalog.BomLine{
			{RawMaterialID: semiRM.ID, Quantity: decimal.NewFromInt(3)},
		})
		require.NoError(t, err)
		semi.Details[0].RawMaterial = semiRM

		good := testFinishedGood(t, 5, []catalog.ComponentLine{
			catalog.RawMaterialLine(rm.ID, decimal.NewFromInt(4)),
			catalog.SemiFinishedLine(semi.ID, decimal.NewFromInt(1)),
		})
		good.Details[0].RawMaterial = rm
		good.Details[1].SemiFinishedGood = semi

		// (4*500 + 3*1000) / 5 = 1000
		assert.Equal(t, "1000", ComputeUnitCost(good).String())
	})

	t.Run("zero batch quantity yields zero", func(t *testing.T) {
		rm := testRawMaterial(t, 1000)
		good := testFinishedGood(t, 0, []catalog.ComponentLine{
			catalog.RawMaterialLine(rm.ID, decimal.NewFromInt(5)),
		})
		good.Details[0].RawMaterial = rm

		assert.True(t, ComputeUnitCost(good).IsZero())
	})

	t.Run("unloaded component lines are skipped", func(t *testing.T) {
		good := testFinishedGood(t, 10, []catalog.ComponentLine{
			catalog.RawMaterialLine(uuid.New(), decimal.NewFromInt(5)),
			catalog.SemiFinishedLine(uuid.New(), decimal.NewFromInt(2)),
		})

		assert.True(t, ComputeUnitCost(good).IsZero())
	})

	t.Run("nil good yields zero", func(t *testing.T) {
		assert.True(t, ComputeUnitCost(nil).IsZero())
	})
}

func TestUnitMargin(t *testing.T) {
	rm := testRawMaterial(t, 1000)
	good := testFinishedGood(t, 10, []catalog.ComponentLine{
		catalog.RawMaterialLine(rm.ID, decimal.NewFromInt(5)),
	})
	good.Details[0].RawMaterial = rm
	good.SellingPrice = decimal.NewFromInt(800)

	// Unit cost 500, margin 300
	cost := ComputeUnitCost(good)
	assert.Equal(t, "300", UnitMargin(good, cost).String())
}

func testRawMaterial(t *testing.T, supplierPrice int64) *catalog.RawMaterial {
	t.Helper()
	rm, err := catalog.NewRawMaterial(uuid.New(), uuid.New(), "Material",
		decimal.NewFromInt(supplierPrice), decimal.Zero)
	require.NoError(t, err)
	return rm
}

func testFinishedGood(t *testing.T, quantity int64, lines []catalog.ComponentLine) *catalog.FinishedGood {
	t.Helper()
	good, err := catalog.NewFinishedGood(uuid.New(), "FG-"+uuid.NewString()[:8], "Paint",
		time.Now(), "B-1", catalog.QualityGradeA, decimal.NewFromInt(1), decimal.Zero, lines)
	require.NoError(t, err)
	good.Quantity = decimal.NewFromInt(quantity)
	return good
}

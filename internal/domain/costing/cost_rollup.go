package costing

import (
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/catalog"
)

// ComputeUnitCost rolls up the material cost of one unit of a finished good
// from its BOM. The good must be loaded with its full BOM tree (detail lines,
// raw materials, and semi-finished goods with their own lines).
//
// Direct raw material lines contribute consumed quantity times supplier
// price. Semi-finished lines contribute the full material cost of the
// referenced good's batch recipe. The batch total is divided by the good's
// quantity; a good with zero quantity has no unit cost and yields zero.
func ComputeUnitCost(good *catalog.FinishedGood) decimal.Decimal {
	if good == nil || good.Quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	total := decimal.Zero
	for i := range good.Details {
		detail := &good.Details[i]
		switch detail.Kind {
		case catalog.ComponentRawMaterial:
			if detail.RawMaterial == nil {
				continue
			}
			total = total.Add(detail.Quantity.Mul(detail.RawMaterial.SupplierPrice))
		case catalog.ComponentSemiFinished:
			if detail.SemiFinishedGood == nil {
				continue
			}
			total = total.Add(detail.SemiFinishedGood.MaterialCost())
		}
	}

	return total.Div(good.Quantity)
}

// UnitMargin returns the per-unit margin of a finished good at its current
// selling price, given an already computed unit cost.
func UnitMargin(good *catalog.FinishedGood, unitCost decimal.Decimal) decimal.Decimal {
	return good.SellingPrice.Sub(unitCost)
}

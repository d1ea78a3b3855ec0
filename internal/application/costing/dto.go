package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitCostResponse represents the rolled-up material cost of one unit of a
// finished good
type UnitCostResponse struct {
	FinishedGoodID uuid.UUID       `json:"finished_good_id"`
	ProductionCode string          `json:"production_code"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	FromCache      bool            `json:"from_cache"`
}

// MarginResponse represents the per-unit margin of a finished good
type MarginResponse struct {
	FinishedGoodID uuid.UUID       `json:"finished_good_id"`
	ProductionCode string          `json:"production_code"`
	Name           string          `json:"name"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	UnitMargin     decimal.Decimal `json:"unit_margin"`
}

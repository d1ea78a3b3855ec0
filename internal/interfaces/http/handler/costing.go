package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	costingapp "github.com/paintfactory/backend/internal/application/costing"
)

// CostingHandler handles cost rollup API endpoints
type CostingHandler struct {
	BaseHandler
	costingService *costingapp.CostingService
}

// NewCostingHandler creates a new CostingHandler
func NewCostingHandler(costingService *costingapp.CostingService) *CostingHandler {
	return &CostingHandler{costingService: costingService}
}

// RegisterRoutes registers all costing routes
func (h *CostingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	costing := rg.Group("/finished-goods")
	costing.GET("/:id/unit-cost", h.UnitCost)
	costing.GET("/:id/margin", h.Margin)
}

// UnitCost returns the rolled-up material cost of one unit of a finished good
func (h *CostingHandler) UnitCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid finished good ID format")
		return
	}

	cost, err := h.costingService.UnitCost(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cost)
}

// Margin returns the per-unit margin of a finished good
func (h *CostingHandler) Margin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid finished good ID format")
		return
	}

	margin, err := h.costingService.Margin(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, margin)
}

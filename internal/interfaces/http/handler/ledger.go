package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/ledger"
)

// LedgerHandler handles stock ledger API endpoints. The append endpoint is
// the only write path for on-hand quantities.
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers all stock ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	stock.POST("/movements", h.AppendMovement)
	stock.GET("/:item_type/:item_id", h.CurrentStock)
	stock.GET("/:item_type/:item_id/movements", h.ListMovements)
	stock.POST("/:item_type/:item_id/verify", h.VerifyConsistency)
}

// AppendMovement appends a stock movement to the ledger
func (h *LedgerHandler) AppendMovement(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req ledgerapp.AppendMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.ledgerService.AppendMovement(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// CurrentStock returns the ledger-derived stock level of an item
func (h *LedgerHandler) CurrentStock(c *gin.Context) {
	itemType, itemID, ok := h.bindItemParams(c)
	if !ok {
		return
	}

	stock, err := h.ledgerService.CurrentStock(c.Request.Context(), itemType, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// ListMovements returns the movement history of an item, newest first
func (h *LedgerHandler) ListMovements(c *gin.Context) {
	itemType, itemID, ok := h.bindItemParams(c)
	if !ok {
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		filter.Filters["movement_type"] = movementType
	}
	if refKind := c.Query("ref_kind"); refKind != "" {
		filter.Filters["ref_kind"] = refKind
	}

	movements, total, err := h.ledgerService.GetMovements(c.Request.Context(), itemType, itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// VerifyConsistency cross-checks the denormalized quantity of an item
// against its ledger sum
func (h *LedgerHandler) VerifyConsistency(c *gin.Context) {
	itemType, itemID, ok := h.bindItemParams(c)
	if !ok {
		return
	}

	if err := h.ledgerService.VerifyConsistency(c.Request.Context(), itemType, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"consistent": true})
}

func (h *LedgerHandler) bindItemParams(c *gin.Context) (ledger.ItemType, uuid.UUID, bool) {
	itemType := ledger.ItemType(c.Param("item_type"))
	if !itemType.IsValid() {
		h.BadRequest(c, "Invalid item type: "+c.Param("item_type"))
		return "", uuid.Nil, false
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return "", uuid.Nil, false
	}

	return itemType, itemID, true
}

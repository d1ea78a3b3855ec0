package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/paintfactory/backend/internal/application/trade"
)

// TradeHandler handles purchase and sale document API endpoints. Finishing a
// document is what moves stock; creating and submitting only change document
// state.
type TradeHandler struct {
	BaseHandler
	tradeService *tradeapp.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *tradeapp.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// RegisterRoutes registers all trade document routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	purchases.POST("", h.CreatePurchase)
	purchases.GET("", h.ListPurchases)
	purchases.GET("/:id", h.GetPurchase)
	purchases.POST("/:id/submit", h.SubmitPurchase)
	purchases.POST("/:id/finish", h.FinishPurchase)
	purchases.POST("/:id/cancel", h.CancelPurchase)

	sales := rg.Group("/sales")
	sales.POST("", h.CreateSale)
	sales.GET("", h.ListSales)
	sales.GET("/:id", h.GetSale)
	sales.POST("/:id/submit", h.SubmitSale)
	sales.POST("/:id/finish", h.FinishSale)
	sales.POST("/:id/cancel", h.CancelSale)
	sales.POST("/:id/return", h.ReturnSale)
}

// CreatePurchase creates a draft purchase
func (h *TradeHandler) CreatePurchase(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.tradeService.CreatePurchase(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, purchase)
}

// GetPurchase returns a purchase by ID
func (h *TradeHandler) GetPurchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.tradeService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// ListPurchases lists purchases with pagination
func (h *TradeHandler) ListPurchases(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	purchases, total, err := h.tradeService.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}

// SubmitPurchase moves a purchase from DRAFT to ONGOING
func (h *TradeHandler) SubmitPurchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.tradeService.SubmitPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// FinishPurchase finishes a purchase and books the PURCHASE_IN movements
func (h *TradeHandler) FinishPurchase(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.tradeService.FinishPurchase(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// CancelPurchase cancels a purchase
func (h *TradeHandler) CancelPurchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req tradeapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.tradeService.CancelPurchase(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// CreateSale creates a draft sale
func (h *TradeHandler) CreateSale(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.tradeService.CreateSale(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetSale returns a sale by ID
func (h *TradeHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.tradeService.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ListSales lists sales with pagination
func (h *TradeHandler) ListSales(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	sales, total, err := h.tradeService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// SubmitSale moves a sale from DRAFT to ONGOING
func (h *TradeHandler) SubmitSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.tradeService.SubmitSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// FinishSale finishes a sale and books the SALE_OUT movements
func (h *TradeHandler) FinishSale(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.tradeService.FinishSale(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// CancelSale cancels a sale
func (h *TradeHandler) CancelSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req tradeapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.tradeService.CancelSale(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ReturnSale returns a finished sale and books the RETURN_IN movements
func (h *TradeHandler) ReturnSale(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.tradeService.ReturnSale(c.Request.Context(), actorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	productionapp "github.com/paintfactory/backend/internal/application/production"
)

// ProductionHandler handles production run API endpoints
type ProductionHandler struct {
	BaseHandler
	productionService *productionapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService *productionapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// RegisterRoutes registers all production routes
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	runs := rg.Group("/production-runs")
	runs.POST("", h.RecordProduction)
	runs.GET("", h.ListFinishedGoods)
	runs.GET("/:id", h.GetFinishedGood)
}

// RecordProduction registers a production run: the finished good with its
// BOM plus the component PRODUCTION_OUT and output PRODUCTION_IN movements,
// all in one unit of work
func (h *ProductionHandler) RecordProduction(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req productionapp.RecordProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	good, err := h.productionService.RecordProduction(c.Request.Context(), actorID, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, good)
}

// GetFinishedGood returns a production run with its full BOM
func (h *ProductionHandler) GetFinishedGood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid finished good ID format")
		return
	}

	good, err := h.productionService.GetFinishedGood(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, good)
}

// ListFinishedGoods lists production runs with pagination
func (h *ProductionHandler) ListFinishedGoods(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if grade := c.Query("grade"); grade != "" {
		filter.Filters["grade"] = grade
	}
	if batch := c.Query("batch_number"); batch != "" {
		filter.Filters["batch_number"] = batch
	}

	goods, total, err := h.productionService.ListFinishedGoods(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, goods, total, filter.Page, filter.PageSize)
}

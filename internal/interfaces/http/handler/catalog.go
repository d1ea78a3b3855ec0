package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/paintfactory/backend/internal/application/catalog"
)

// CatalogHandler handles catalog item API endpoints: raw materials, paint
// accessories and semi-finished goods with their recipes.
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	materials := rg.Group("/raw-materials")
	materials.POST("", h.CreateRawMaterial)
	materials.GET("", h.ListRawMaterials)
	materials.GET("/:id", h.GetRawMaterial)
	materials.PUT("/:id/prices", h.ChangeRawMaterialPrices)

	accessories := rg.Group("/accessories")
	accessories.POST("", h.CreatePaintAccessory)
	accessories.GET("", h.ListPaintAccessories)
	accessories.GET("/:id", h.GetPaintAccessory)

	semiFinished := rg.Group("/semi-finished-goods")
	semiFinished.POST("", h.CreateSemiFinishedGood)
	semiFinished.GET("", h.ListSemiFinishedGoods)
	semiFinished.GET("/:id", h.GetSemiFinishedGood)
}

// CreateRawMaterial registers a raw material
func (h *CatalogHandler) CreateRawMaterial(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req catalogapp.CreateRawMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.catalogService.CreateRawMaterial(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, material)
}

// GetRawMaterial returns a raw material by ID
func (h *CatalogHandler) GetRawMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raw material ID format")
		return
	}

	material, err := h.catalogService.GetRawMaterial(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// ListRawMaterials lists raw materials with pagination
func (h *CatalogHandler) ListRawMaterials(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		filter.Filters["supplier_id"] = supplierID
	}

	materials, total, err := h.catalogService.ListRawMaterials(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, materials, total, filter.Page, filter.PageSize)
}

// ChangeRawMaterialPrices updates a raw material's supplier or selling price
func (h *CatalogHandler) ChangeRawMaterialPrices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raw material ID format")
		return
	}

	var req catalogapp.ChangePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.catalogService.ChangeRawMaterialPrices(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// CreatePaintAccessory registers a paint accessory
func (h *CatalogHandler) CreatePaintAccessory(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req catalogapp.CreatePaintAccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	accessory, err := h.catalogService.CreatePaintAccessory(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, accessory)
}

// GetPaintAccessory returns an accessory by ID
func (h *CatalogHandler) GetPaintAccessory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid accessory ID format")
		return
	}

	accessory, err := h.catalogService.GetPaintAccessory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accessory)
}

// ListPaintAccessories lists accessories with pagination
func (h *CatalogHandler) ListPaintAccessories(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	accessories, total, err := h.catalogService.ListPaintAccessories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, accessories, total, filter.Page, filter.PageSize)
}

// CreateSemiFinishedGood registers a semi-finished good with its recipe
func (h *CatalogHandler) CreateSemiFinishedGood(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user not identified")
		return
	}

	var req catalogapp.CreateSemiFinishedGoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	good, err := h.catalogService.CreateSemiFinishedGood(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, good)
}

// GetSemiFinishedGood returns a semi-finished good with its recipe
func (h *CatalogHandler) GetSemiFinishedGood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid semi-finished good ID format")
		return
	}

	good, err := h.catalogService.GetSemiFinishedGood(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, good)
}

// ListSemiFinishedGoods lists semi-finished goods with pagination
func (h *CatalogHandler) ListSemiFinishedGoods(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goods, total, err := h.catalogService.ListSemiFinishedGoods(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, goods, total, filter.Page, filter.PageSize)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tarifario/internal/core/apperror"
	appctx "tarifario/internal/core/context"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/http/v1/dto"
)

// PricingHandler exposes the price calculation engine and the supplier
// discount registrar. Catalog CRUD for lists, rules and combinations
// rides the generic CatalogHandler; this handler covers the operations
// that do not fit that mold.
type PricingHandler struct {
	*BaseHandler
	engine     *pricing.Engine
	lists      *pricing.ListService
	itemPrices *pricing.ItemPriceService
	registrar  *pricing.Registrar
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(
	base *BaseHandler,
	engine *pricing.Engine,
	lists *pricing.ListService,
	itemPrices *pricing.ItemPriceService,
	registrar *pricing.Registrar,
) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		engine:      engine,
		lists:       lists,
		itemPrices:  itemPrices,
		registrar:   registrar,
	}
}

// Calculate handles POST /pricing/calculate.
func (h *PricingHandler) Calculate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CalculatePriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.engine.CalculatePrice(ctx, req.ToCalcRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCalcResult(result))
}

// ActiveList handles GET /pricing/active-list.
// Query params: companyId (required), branchId, date (RFC 3339).
func (h *PricingHandler) ActiveList(c *gin.Context) {
	ctx := c.Request.Context()

	companyID, err := id.Parse(c.Query("companyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid companyId").WithDetail("companyId", c.Query("companyId")))
		return
	}

	var branchID *id.ID
	if raw := c.Query("branchId"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid branchId").WithDetail("branchId", raw))
			return
		}
		branchID = &parsed
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date (RFC 3339 expected)").WithDetail("date", raw))
			return
		}
		date = parsed
	}

	list, err := h.lists.ResolveActive(ctx, h.engine, companyID, branchID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPriceList(list))
}

// RegisterSupplierDiscount handles POST /pricing/supplier-discounts.
func (h *PricingHandler) RegisterSupplierDiscount(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterSupplierDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	authorizedBy := h.GetUserID(c)
	if user := appctx.GetUser(ctx); user != nil && user.Email != "" {
		authorizedBy = user.Email
	}

	discount, err := h.registrar.RegisterSupplierDiscount(ctx, req.ItemPriceID, req.Percentage, authorizedBy, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromSupplierDiscount(discount))
}

// ListSupplierDiscounts handles GET /pricing/item-prices/:id/supplier-discounts.
func (h *PricingHandler) ListSupplierDiscounts(c *gin.Context) {
	ctx := c.Request.Context()

	itemPriceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	discounts, err := h.registrar.History(ctx, itemPriceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.SupplierDiscountResponse, len(discounts))
	for i, d := range discounts {
		items[i] = dto.FromSupplierDiscount(d)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItemPrice handles POST /pricing/item-prices.
func (h *PricingHandler) CreateItemPrice(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateItemPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.itemPrices.Create(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromItemPrice(item))
}

// UpdateItemPrice handles PUT /pricing/item-prices/:id.
func (h *PricingHandler) UpdateItemPrice(c *gin.Context) {
	ctx := c.Request.Context()

	itemPriceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateItemPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.itemPrices.GetByID(ctx, itemPriceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(existing)
	if err := h.itemPrices.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItemPrice(existing))
}

// GetItemPrice handles GET /pricing/item-prices/:id.
func (h *PricingHandler) GetItemPrice(c *gin.Context) {
	ctx := c.Request.Context()

	itemPriceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	item, err := h.itemPrices.GetByID(ctx, itemPriceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItemPrice(item))
}

// ListItemPrices handles GET /pricing/price-lists/:id/item-prices.
func (h *PricingHandler) ListItemPrices(c *gin.Context) {
	ctx := c.Request.Context()

	priceListID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	items, err := h.itemPrices.ListByList(ctx, priceListID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]*dto.ItemPriceResponse, len(items))
	for i, item := range items {
		dtos[i] = dto.FromItemPrice(item)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

package dto

import (
	"time"

	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/pricing"
)

// --- Price list ---

// CreatePriceListRequest is the request body for creating a price list.
type CreatePriceListRequest struct {
	Code        string                `json:"code"`
	Name        string                `json:"name" binding:"required"`
	CompanyID   *id.ID                `json:"companyId"`
	BranchID    *id.ID                `json:"branchId"`
	Kind        pricing.PriceListKind `json:"kind" binding:"required"`
	Channel     *pricing.SalesChannel `json:"channel"`
	ValidFrom   time.Time             `json:"validFrom" binding:"required"`
	ValidTo     *time.Time            `json:"validTo"`
	Description *string               `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePriceListRequest) ToEntity() *pricing.PriceList {
	item := pricing.NewPriceList(r.Code, r.Name, r.Kind, r.ValidFrom)
	item.CompanyID = r.CompanyID
	item.BranchID = r.BranchID
	item.Channel = r.Channel
	item.ValidTo = r.ValidTo
	item.Description = r.Description
	return item
}

// UpdatePriceListRequest is the request body for updating a price list.
type UpdatePriceListRequest struct {
	Code        string                `json:"code"`
	Name        string                `json:"name" binding:"required"`
	CompanyID   *id.ID                `json:"companyId"`
	BranchID    *id.ID                `json:"branchId"`
	Kind        pricing.PriceListKind `json:"kind" binding:"required"`
	Channel     *pricing.SalesChannel `json:"channel"`
	ValidFrom   time.Time             `json:"validFrom" binding:"required"`
	ValidTo     *time.Time            `json:"validTo"`
	Description *string               `json:"description"`
	Version     int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePriceListRequest) ApplyTo(item *pricing.PriceList) {
	item.Code = r.Code
	item.Name = r.Name
	item.CompanyID = r.CompanyID
	item.BranchID = r.BranchID
	item.Kind = r.Kind
	item.Channel = r.Channel
	item.ValidFrom = r.ValidFrom
	item.ValidTo = r.ValidTo
	item.Description = r.Description
	item.Version = r.Version
}

// PriceListResponse is the response body for a price list.
type PriceListResponse struct {
	ID           string                `json:"id"`
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	CompanyID    *id.ID                `json:"companyId,omitempty"`
	BranchID     *id.ID                `json:"branchId,omitempty"`
	Kind         pricing.PriceListKind `json:"kind"`
	KindName     string                `json:"kindName"`
	Channel      *pricing.SalesChannel `json:"channel,omitempty"`
	ValidFrom    time.Time             `json:"validFrom"`
	ValidTo      *time.Time            `json:"validTo,omitempty"`
	Description  *string               `json:"description,omitempty"`
	State        int                   `json:"state"`
	DeletionMark bool                  `json:"deletionMark"`
	Version      int                   `json:"version"`
}

// FromPriceList creates response DTO from domain entity.
func FromPriceList(item *pricing.PriceList) *PriceListResponse {
	return &PriceListResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		CompanyID:    item.CompanyID,
		BranchID:     item.BranchID,
		Kind:         item.Kind,
		KindName:     item.Kind.String(),
		Channel:      item.Channel,
		ValidFrom:    item.ValidFrom,
		ValidTo:      item.ValidTo,
		Description:  item.Description,
		State:        int(item.State),
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

// --- Price rule ---

// CreatePriceRuleRequest is the request body for creating a price rule.
type CreatePriceRuleRequest struct {
	Code          string                `json:"code"`
	Name          string                `json:"name" binding:"required"`
	PriceListID   id.ID                 `json:"priceListId" binding:"required"`
	Kind          pricing.RuleKind      `json:"kind" binding:"required"`
	Priority      int                   `json:"priority"`
	Channel       *pricing.SalesChannel `json:"channel"`
	QtyMin        *int                  `json:"qtyMin"`
	QtyMax        *int                  `json:"qtyMax"`
	AmountMin     *types.Money          `json:"amountMin"`
	AmountMax     *types.Money          `json:"amountMax"`
	OrderTotalMin *types.Money          `json:"orderTotalMin"`
	OrderTotalMax *types.Money          `json:"orderTotalMax"`
	DiscountKind  pricing.DiscountKind  `json:"discountKind" binding:"required"`
	DiscountValue types.Money           `json:"discountValue" binding:"required"`
	GroupID       *id.ID                `json:"groupId"`
	LineID        *id.ID                `json:"lineId"`
	ArticleID     *id.ID                `json:"articleId"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePriceRuleRequest) ToEntity() *pricing.PriceRule {
	item := pricing.NewPriceRule(r.Code, r.Name, r.PriceListID, r.Kind)
	item.Priority = r.Priority
	item.Channel = r.Channel
	item.QtyMin = r.QtyMin
	item.QtyMax = r.QtyMax
	item.AmountMin = r.AmountMin
	item.AmountMax = r.AmountMax
	item.OrderTotalMin = r.OrderTotalMin
	item.OrderTotalMax = r.OrderTotalMax
	item.DiscountKind = r.DiscountKind
	item.DiscountValue = r.DiscountValue
	item.GroupID = r.GroupID
	item.LineID = r.LineID
	item.ArticleID = r.ArticleID
	return item
}

// UpdatePriceRuleRequest is the request body for updating a price rule.
type UpdatePriceRuleRequest struct {
	CreatePriceRuleRequest
	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePriceRuleRequest) ApplyTo(item *pricing.PriceRule) {
	item.Code = r.Code
	item.Name = r.Name
	item.PriceListID = r.PriceListID
	item.Kind = r.Kind
	item.Priority = r.Priority
	item.Channel = r.Channel
	item.QtyMin = r.QtyMin
	item.QtyMax = r.QtyMax
	item.AmountMin = r.AmountMin
	item.AmountMax = r.AmountMax
	item.OrderTotalMin = r.OrderTotalMin
	item.OrderTotalMax = r.OrderTotalMax
	item.DiscountKind = r.DiscountKind
	item.DiscountValue = r.DiscountValue
	item.GroupID = r.GroupID
	item.LineID = r.LineID
	item.ArticleID = r.ArticleID
	item.Version = r.Version
}

// PriceRuleResponse is the response body for a price rule.
type PriceRuleResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	PriceListID   string                `json:"priceListId"`
	Kind          pricing.RuleKind      `json:"kind"`
	KindName      string                `json:"kindName"`
	Priority      int                   `json:"priority"`
	Channel       *pricing.SalesChannel `json:"channel,omitempty"`
	QtyMin        *int                  `json:"qtyMin,omitempty"`
	QtyMax        *int                  `json:"qtyMax,omitempty"`
	AmountMin     *types.Money          `json:"amountMin,omitempty"`
	AmountMax     *types.Money          `json:"amountMax,omitempty"`
	OrderTotalMin *types.Money          `json:"orderTotalMin,omitempty"`
	OrderTotalMax *types.Money          `json:"orderTotalMax,omitempty"`
	DiscountKind  pricing.DiscountKind  `json:"discountKind"`
	DiscountValue types.Money           `json:"discountValue"`
	GroupID       *id.ID                `json:"groupId,omitempty"`
	LineID        *id.ID                `json:"lineId,omitempty"`
	ArticleID     *id.ID                `json:"articleId,omitempty"`
	State         int                   `json:"state"`
	DeletionMark  bool                  `json:"deletionMark"`
	Version       int                   `json:"version"`
}

// FromPriceRule creates response DTO from domain entity.
func FromPriceRule(item *pricing.PriceRule) *PriceRuleResponse {
	return &PriceRuleResponse{
		ID:            item.ID.String(),
		Code:          item.Code,
		Name:          item.Name,
		PriceListID:   item.PriceListID.String(),
		Kind:          item.Kind,
		KindName:      item.Kind.DisplayName(),
		Priority:      item.Priority,
		Channel:       item.Channel,
		QtyMin:        item.QtyMin,
		QtyMax:        item.QtyMax,
		AmountMin:     item.AmountMin,
		AmountMax:     item.AmountMax,
		OrderTotalMin: item.OrderTotalMin,
		OrderTotalMax: item.OrderTotalMax,
		DiscountKind:  item.DiscountKind,
		DiscountValue: item.DiscountValue,
		GroupID:       item.GroupID,
		LineID:        item.LineID,
		ArticleID:     item.ArticleID,
		State:         int(item.State),
		DeletionMark:  item.DeletionMark,
		Version:       item.Version,
	}
}

// --- Product combination ---

// CreateCombinationRequest is the request body for creating a combination.
type CreateCombinationRequest struct {
	Code          string               `json:"code"`
	Name          string               `json:"name" binding:"required"`
	PriceListID   id.ID                `json:"priceListId" binding:"required"`
	GroupID       *id.ID               `json:"groupId"`
	LineID        *id.ID               `json:"lineId"`
	ArticleID     *id.ID               `json:"articleId"`
	ComboQtyMin   int                  `json:"comboQtyMin"`
	ComboQtyMax   *int                 `json:"comboQtyMax"`
	DiscountKind  pricing.DiscountKind `json:"discountKind" binding:"required"`
	DiscountValue types.Money          `json:"discountValue" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCombinationRequest) ToEntity() *pricing.ProductCombination {
	item := pricing.NewProductCombination(r.Code, r.Name, r.PriceListID)
	item.GroupID = r.GroupID
	item.LineID = r.LineID
	item.ArticleID = r.ArticleID
	if r.ComboQtyMin > 0 {
		item.ComboQtyMin = r.ComboQtyMin
	}
	item.ComboQtyMax = r.ComboQtyMax
	item.DiscountKind = r.DiscountKind
	item.DiscountValue = r.DiscountValue
	return item
}

// UpdateCombinationRequest is the request body for updating a combination.
type UpdateCombinationRequest struct {
	CreateCombinationRequest
	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCombinationRequest) ApplyTo(item *pricing.ProductCombination) {
	item.Code = r.Code
	item.Name = r.Name
	item.PriceListID = r.PriceListID
	item.GroupID = r.GroupID
	item.LineID = r.LineID
	item.ArticleID = r.ArticleID
	item.ComboQtyMin = r.ComboQtyMin
	item.ComboQtyMax = r.ComboQtyMax
	item.DiscountKind = r.DiscountKind
	item.DiscountValue = r.DiscountValue
	item.Version = r.Version
}

// CombinationResponse is the response body for a product combination.
type CombinationResponse struct {
	ID            string               `json:"id"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	PriceListID   string               `json:"priceListId"`
	GroupID       *id.ID               `json:"groupId,omitempty"`
	LineID        *id.ID               `json:"lineId,omitempty"`
	ArticleID     *id.ID               `json:"articleId,omitempty"`
	ComboQtyMin   int                  `json:"comboQtyMin"`
	ComboQtyMax   *int                 `json:"comboQtyMax,omitempty"`
	DiscountKind  pricing.DiscountKind `json:"discountKind"`
	DiscountValue types.Money          `json:"discountValue"`
	State         int                  `json:"state"`
	DeletionMark  bool                 `json:"deletionMark"`
	Version       int                  `json:"version"`
}

// FromCombination creates response DTO from domain entity.
func FromCombination(item *pricing.ProductCombination) *CombinationResponse {
	return &CombinationResponse{
		ID:            item.ID.String(),
		Code:          item.Code,
		Name:          item.Name,
		PriceListID:   item.PriceListID.String(),
		GroupID:       item.GroupID,
		LineID:        item.LineID,
		ArticleID:     item.ArticleID,
		ComboQtyMin:   item.ComboQtyMin,
		ComboQtyMax:   item.ComboQtyMax,
		DiscountKind:  item.DiscountKind,
		DiscountValue: item.DiscountValue,
		State:         int(item.State),
		DeletionMark:  item.DeletionMark,
		Version:       item.Version,
	}
}

// --- Item price ---

// CreateItemPriceRequest is the request body for creating an item price.
type CreateItemPriceRequest struct {
	PriceListID   id.ID       `json:"priceListId" binding:"required"`
	ArticleID     id.ID       `json:"articleId" binding:"required"`
	BasePrice     types.Money `json:"basePrice" binding:"required"`
	LastCost      types.Money `json:"lastCost"`
	PurchasePrice types.Money `json:"purchasePrice"`
	Notes         *string     `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateItemPriceRequest) ToEntity() *pricing.ItemPrice {
	item := pricing.NewItemPrice(r.PriceListID, r.ArticleID, r.BasePrice)
	item.LastCost = r.LastCost
	item.PurchasePrice = r.PurchasePrice
	item.Notes = r.Notes
	return item
}

// UpdateItemPriceRequest is the request body for updating an item price.
// The below-cost authorization flag is not settable here; it only changes
// through supplier discount registration.
type UpdateItemPriceRequest struct {
	BasePrice     types.Money `json:"basePrice" binding:"required"`
	LastCost      types.Money `json:"lastCost"`
	PurchasePrice types.Money `json:"purchasePrice"`
	Notes         *string     `json:"notes"`
	Version       int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateItemPriceRequest) ApplyTo(item *pricing.ItemPrice) {
	item.BasePrice = r.BasePrice
	item.LastCost = r.LastCost
	item.PurchasePrice = r.PurchasePrice
	item.Notes = r.Notes
	item.Version = r.Version
}

// ItemPriceResponse is the response body for an item price.
type ItemPriceResponse struct {
	ID                  string       `json:"id"`
	PriceListID         string       `json:"priceListId"`
	ArticleID           string       `json:"articleId"`
	BasePrice           types.Money  `json:"basePrice"`
	LastCost            types.Money  `json:"lastCost"`
	PurchasePrice       types.Money  `json:"purchasePrice"`
	BelowCostAuthorized bool         `json:"belowCostAuthorized"`
	SupplierDiscountPct *types.Money `json:"supplierDiscountPct,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
	Version             int          `json:"version"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// FromItemPrice creates response DTO from domain entity.
func FromItemPrice(item *pricing.ItemPrice) *ItemPriceResponse {
	return &ItemPriceResponse{
		ID:                  item.ID.String(),
		PriceListID:         item.PriceListID.String(),
		ArticleID:           item.ArticleID.String(),
		BasePrice:           item.BasePrice,
		LastCost:            item.LastCost,
		PurchasePrice:       item.PurchasePrice,
		BelowCostAuthorized: item.BelowCostAuthorized,
		SupplierDiscountPct: item.SupplierDiscountPct,
		Notes:               item.Notes,
		Version:             item.Version,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

// --- Price calculation (legacy POS wire format, Spanish field names) ---

// CalculatePriceRequest is the request body for POST /pricing/calculate.
type CalculatePriceRequest struct {
	CompanyID  id.ID                 `json:"empresa_id" binding:"required"`
	BranchID   *id.ID                `json:"sucursal_id"`
	ArticleID  id.ID                 `json:"articulo_id" binding:"required"`
	Channel    *pricing.SalesChannel `json:"canal"`
	Quantity   int                   `json:"cantidad"`
	OrderTotal types.Money           `json:"monto_pedido"`
	Date       *time.Time            `json:"fecha"`
}

// ToCalcRequest converts DTO to the engine request.
func (r *CalculatePriceRequest) ToCalcRequest() pricing.CalcRequest {
	return pricing.CalcRequest{
		CompanyID:  r.CompanyID,
		BranchID:   r.BranchID,
		ArticleID:  r.ArticleID,
		Channel:    r.Channel,
		Quantity:   r.Quantity,
		OrderTotal: r.OrderTotal,
		Date:       r.Date,
	}
}

// CalculatePriceResponse mirrors the legacy POS calculation payload.
type CalculatePriceResponse struct {
	BasePrice           types.Money             `json:"precio_base"`
	FinalPrice          types.Money             `json:"precio_final"`
	LastCost            types.Money             `json:"ultimo_costo"`
	AppliedRules        []pricing.AppliedRule   `json:"reglas_aplicadas"`
	BelowCostAuthorized bool                    `json:"autorizado_bajo_costo"`
	CostValidation      *pricing.CostValidation `json:"validacion_costo,omitempty"`
	PriceListID         string                  `json:"lista_precio_id,omitempty"`
	PriceListName       string                  `json:"lista_precio_nombre,omitempty"`
	Error               string                  `json:"error,omitempty"`
}

// FromCalcResult creates response DTO from the engine result.
func FromCalcResult(res *pricing.CalcResult) *CalculatePriceResponse {
	return &CalculatePriceResponse{
		BasePrice:           res.BasePrice,
		FinalPrice:          res.FinalPrice,
		LastCost:            res.LastCost,
		AppliedRules:        res.AppliedRules,
		BelowCostAuthorized: res.BelowCostAuthorized,
		CostValidation:      res.CostValidation,
		PriceListID:         res.PriceListID,
		PriceListName:       res.PriceListName,
		Error:               res.Error,
	}
}

// --- Supplier discount ---

// RegisterSupplierDiscountRequest is the request body for
// POST /pricing/supplier-discounts.
type RegisterSupplierDiscountRequest struct {
	ItemPriceID id.ID       `json:"itemPriceId" binding:"required"`
	Percentage  types.Money `json:"percentage" binding:"required"`
	Notes       *string     `json:"notes"`
}

// SupplierDiscountResponse is the response body for a supplier discount.
type SupplierDiscountResponse struct {
	ID           string      `json:"id"`
	ItemPriceID  string      `json:"itemPriceId"`
	Percentage   types.Money `json:"percentage"`
	Amount       types.Money `json:"amount"`
	AuthorizedBy string      `json:"authorizedBy"`
	AuthorizedAt time.Time   `json:"authorizedAt"`
	Notes        *string     `json:"notes,omitempty"`
}

// FromSupplierDiscount creates response DTO from domain entity.
func FromSupplierDiscount(item *pricing.SupplierDiscount) *SupplierDiscountResponse {
	return &SupplierDiscountResponse{
		ID:           item.ID.String(),
		ItemPriceID:  item.ItemPriceID.String(),
		Percentage:   item.Percentage,
		Amount:       item.Amount,
		AuthorizedBy: item.AuthorizedBy,
		AuthorizedAt: item.AuthorizedAt,
		Notes:        item.Notes,
	}
}

package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
)

// Supplier discount bounds. A below-cost authorization only makes
// commercial sense when the supplier absorbs the majority of the price.
var (
	MinSupplierPct = decimal.NewFromInt(50)
	MaxSupplierPct = decimal.NewFromInt(70)
)

// PriceList is the central pricing aggregate: a dated, scoped container
// of base prices, rules and combinations.
type PriceList struct {
	entity.Catalog

	// CompanyID scopes the list to a company (nullable, but company or
	// branch is required)
	CompanyID *id.ID `db:"company_id" json:"companyId,omitempty"`

	// BranchID scopes the list to a single branch; NULL means the list
	// applies company-wide
	BranchID *id.ID `db:"branch_id" json:"branchId,omitempty"`

	// Kind classifies the list (Normal/Promotional/Special)
	Kind PriceListKind `db:"kind" json:"kind"`

	// Channel optionally restricts the list to one sales channel
	Channel *SalesChannel `db:"channel" json:"channel,omitempty"`

	// ValidFrom is the start of the vigency range (required)
	ValidFrom time.Time `db:"valid_from" json:"validFrom"`

	// ValidTo is the end of the vigency range; nil = open-ended
	ValidTo *time.Time `db:"valid_to" json:"validTo,omitempty"`

	// Description is free-form commentary
	Description *string `db:"description" json:"description,omitempty"`
}

// NewPriceList creates a new price list with required fields.
func NewPriceList(code, name string, kind PriceListKind, validFrom time.Time) *PriceList {
	return &PriceList{
		Catalog:   entity.NewCatalog(code, name),
		Kind:      kind,
		ValidFrom: validFrom,
	}
}

// Validate implements entity.Validatable interface.
func (l *PriceList) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if l.CompanyID == nil && l.BranchID == nil {
		return apperror.NewValidation("price list requires a company or branch scope").
			WithDetail("field", "companyId")
	}

	if !l.Kind.Valid() {
		return apperror.NewValidation("invalid price list kind").
			WithDetail("field", "kind").
			WithDetail("value", int(l.Kind))
	}

	if l.Channel != nil && !l.Channel.Valid() {
		return apperror.NewValidation("invalid sales channel").
			WithDetail("field", "channel").
			WithDetail("value", int(*l.Channel))
	}

	if l.ValidFrom.IsZero() {
		return apperror.NewValidation("valid_from is required").
			WithDetail("field", "validFrom")
	}

	if l.ValidTo != nil && l.ValidTo.Before(l.ValidFrom) {
		return apperror.NewValidation("valid_to must not precede valid_from").
			WithDetail("field", "validTo")
	}

	return nil
}

// InVigency reports whether the list is effective at the given date.
func (l *PriceList) InVigency(date time.Time) bool {
	if date.Before(l.ValidFrom) {
		return false
	}
	if l.ValidTo != nil && date.After(*l.ValidTo) {
		return false
	}
	return true
}

// Overlaps reports whether two vigency ranges intersect.
func (l *PriceList) Overlaps(other *PriceList) bool {
	if l.ValidTo != nil && other.ValidFrom.After(*l.ValidTo) {
		return false
	}
	if other.ValidTo != nil && l.ValidFrom.After(*other.ValidTo) {
		return false
	}
	return true
}

// ItemPrice holds the base price of one article within one list.
// Unique per (price list, article).
type ItemPrice struct {
	entity.BaseEntity

	PriceListID id.ID `db:"price_list_id" json:"priceListId"`
	ArticleID   id.ID `db:"article_id" json:"articleId"`

	// BasePrice is the list price before any rule is applied
	BasePrice types.Money `db:"base_price" json:"basePrice"`

	// LastCost is the last known cost; zero means no cost reference
	LastCost types.Money `db:"last_cost" json:"lastCost"`

	// PurchasePrice is the agreed purchase price
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// BelowCostAuthorized permits selling under LastCost
	BelowCostAuthorized bool `db:"below_cost_authorized" json:"belowCostAuthorized"`

	// SupplierDiscountPct is the authorized supplier percentage (50-70)
	SupplierDiscountPct *types.Money `db:"supplier_discount_pct" json:"supplierDiscountPct,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewItemPrice creates a base price record for an article in a list.
func NewItemPrice(priceListID, articleID id.ID, basePrice types.Money) *ItemPrice {
	now := time.Now().UTC()
	return &ItemPrice{
		BaseEntity:  entity.NewBaseEntity(),
		PriceListID: priceListID,
		ArticleID:   articleID,
		BasePrice:   basePrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate implements entity.Validatable interface.
func (p *ItemPrice) Validate(ctx context.Context) error {
	if id.IsNil(p.PriceListID) {
		return apperror.NewValidation("price list is required").
			WithDetail("field", "priceListId")
	}
	if id.IsNil(p.ArticleID) {
		return apperror.NewValidation("article is required").
			WithDetail("field", "articleId")
	}
	if p.BasePrice.IsNegative() || p.LastCost.IsNegative() || p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("field", "basePrice")
	}

	if p.SupplierDiscountPct != nil && !pctInSupplierRange(*p.SupplierDiscountPct) {
		return apperror.NewValidation("supplier discount must be between 50 and 70 percent").
			WithDetail("field", "supplierDiscountPct").
			WithDetail("value", p.SupplierDiscountPct.String())
	}

	// Selling below cost requires an explicit supplier authorization.
	if p.LastCost.IsPositive() && p.BasePrice.LessThan(p.LastCost) {
		if !p.BelowCostAuthorized || p.SupplierDiscountPct == nil {
			return apperror.NewBelowCost(p.ArticleID.String(), p.BasePrice.String(), p.LastCost.String())
		}
	}

	return nil
}

// PriceRule is a conditional discount attached to a price list.
type PriceRule struct {
	entity.Catalog

	PriceListID id.ID `db:"price_list_id" json:"priceListId"`

	// Kind selects the matching predicate
	Kind RuleKind `db:"kind" json:"kind"`

	// Priority orders application; lower applies first
	Priority int `db:"priority" json:"priority"`

	// Channel is required for ChannelBased rules
	Channel *SalesChannel `db:"channel" json:"channel,omitempty"`

	// Quantity bounds (UnitScale)
	QtyMin *int `db:"qty_min" json:"qtyMin,omitempty"`
	QtyMax *int `db:"qty_max" json:"qtyMax,omitempty"`

	// Line-item amount bounds (AmountScale)
	AmountMin *types.Money `db:"amount_min" json:"amountMin,omitempty"`
	AmountMax *types.Money `db:"amount_max" json:"amountMax,omitempty"`

	// Order total bounds (OrderTotalScale)
	OrderTotalMin *types.Money `db:"order_total_min" json:"orderTotalMin,omitempty"`
	OrderTotalMax *types.Money `db:"order_total_max" json:"orderTotalMax,omitempty"`

	// Discount to apply when the predicate matches
	DiscountKind  DiscountKind `db:"discount_kind" json:"discountKind"`
	DiscountValue types.Money  `db:"discount_value" json:"discountValue"`

	// Optional catalog scope restriction
	GroupID   *id.ID `db:"group_id" json:"groupId,omitempty"`
	LineID    *id.ID `db:"line_id" json:"lineId,omitempty"`
	ArticleID *id.ID `db:"article_id" json:"articleId,omitempty"`
}

// NewPriceRule creates a rule with required fields.
func NewPriceRule(code, name string, priceListID id.ID, kind RuleKind) *PriceRule {
	return &PriceRule{
		Catalog:     entity.NewCatalog(code, name),
		PriceListID: priceListID,
		Kind:        kind,
	}
}

// Validate implements entity.Validatable interface.
func (r *PriceRule) Validate(ctx context.Context) error {
	if err := r.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(r.PriceListID) {
		return apperror.NewValidation("price list is required").
			WithDetail("field", "priceListId")
	}

	if !r.Kind.Valid() {
		return apperror.NewValidation("invalid rule kind").
			WithDetail("field", "kind").
			WithDetail("value", int(r.Kind))
	}

	// Combination discounts live in their own entity.
	if r.Kind == RuleProductCombination {
		return apperror.NewValidation("combination discounts must be created as product combinations").
			WithDetail("field", "kind")
	}

	if err := r.validateBounds(); err != nil {
		return err
	}

	return validateDiscount(r.DiscountKind, r.DiscountValue)
}

func (r *PriceRule) validateBounds() error {
	switch r.Kind {
	case RuleChannelBased:
		if r.Channel == nil {
			return apperror.NewValidation("channel rule requires a sales channel").
				WithDetail("field", "channel")
		}
		if !r.Channel.Valid() {
			return apperror.NewValidation("invalid sales channel").
				WithDetail("field", "channel").
				WithDetail("value", int(*r.Channel))
		}
	case RuleUnitScale:
		// Either bound alone is enough ("up to 10 units" is a valid scale).
		if r.QtyMin == nil && r.QtyMax == nil {
			return apperror.NewValidation("unit scale rule requires a quantity bound").
				WithDetail("field", "qtyMin")
		}
		if r.QtyMin != nil && r.QtyMax != nil && *r.QtyMax < *r.QtyMin {
			return apperror.NewValidation("quantity bounds are inverted").
				WithDetail("field", "qtyMax")
		}
	case RuleAmountScale:
		if r.AmountMin == nil && r.AmountMax == nil {
			return apperror.NewValidation("amount scale rule requires an amount bound").
				WithDetail("field", "amountMin")
		}
		if r.AmountMin != nil && r.AmountMax != nil && r.AmountMax.LessThan(*r.AmountMin) {
			return apperror.NewValidation("amount bounds are inverted").
				WithDetail("field", "amountMax")
		}
	case RuleOrderTotalScale:
		if r.OrderTotalMin == nil && r.OrderTotalMax == nil {
			return apperror.NewValidation("order total rule requires a total bound").
				WithDetail("field", "orderTotalMin")
		}
		if r.OrderTotalMin != nil && r.OrderTotalMax != nil && r.OrderTotalMax.LessThan(*r.OrderTotalMin) {
			return apperror.NewValidation("order total bounds are inverted").
				WithDetail("field", "orderTotalMax")
		}
	}
	return nil
}

// ProductCombination is a quantity-bundle discount applied after rules.
type ProductCombination struct {
	entity.Catalog

	PriceListID id.ID `db:"price_list_id" json:"priceListId"`

	// Scope restriction; at least one of group/line/article is required
	GroupID   *id.ID `db:"group_id" json:"groupId,omitempty"`
	LineID    *id.ID `db:"line_id" json:"lineId,omitempty"`
	ArticleID *id.ID `db:"article_id" json:"articleId,omitempty"`

	// Quantity window over the transaction quantity
	ComboQtyMin int  `db:"combo_qty_min" json:"comboQtyMin"`
	ComboQtyMax *int `db:"combo_qty_max" json:"comboQtyMax,omitempty"`

	DiscountKind  DiscountKind `db:"discount_kind" json:"discountKind"`
	DiscountValue types.Money  `db:"discount_value" json:"discountValue"`
}

// NewProductCombination creates a combination with required fields.
func NewProductCombination(code, name string, priceListID id.ID) *ProductCombination {
	return &ProductCombination{
		Catalog:     entity.NewCatalog(code, name),
		PriceListID: priceListID,
		ComboQtyMin: 1,
	}
}

// Validate implements entity.Validatable interface.
func (c *ProductCombination) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.PriceListID) {
		return apperror.NewValidation("price list is required").
			WithDetail("field", "priceListId")
	}

	if c.GroupID == nil && c.LineID == nil && c.ArticleID == nil {
		return apperror.NewValidation("combination requires a group, line or article scope").
			WithDetail("field", "groupId")
	}

	if c.ComboQtyMin < 1 {
		return apperror.NewValidation("minimum combination quantity must be at least 1").
			WithDetail("field", "comboQtyMin")
	}
	if c.ComboQtyMax != nil && *c.ComboQtyMax < c.ComboQtyMin {
		return apperror.NewValidation("combination quantity bounds are inverted").
			WithDetail("field", "comboQtyMax")
	}

	return validateDiscount(c.DiscountKind, c.DiscountValue)
}

// SupplierDiscount records a below-cost authorization event.
// Created only through the registrar, never mutated.
type SupplierDiscount struct {
	ID          id.ID `db:"id" json:"id"`
	ItemPriceID id.ID `db:"item_price_id" json:"itemPriceId"`

	// Percentage absorbed by the supplier (50-70)
	Percentage types.Money `db:"percentage" json:"percentage"`

	// Amount = base_price * percentage / 100 at registration time
	Amount types.Money `db:"amount" json:"amount"`

	AuthorizedBy string    `db:"authorized_by" json:"authorizedBy"`
	AuthorizedAt time.Time `db:"authorized_at" json:"authorizedAt"`

	Notes *string `db:"notes" json:"notes,omitempty"`
}

// Validate implements entity.Validatable interface.
func (d *SupplierDiscount) Validate(ctx context.Context) error {
	if id.IsNil(d.ItemPriceID) {
		return apperror.NewValidation("item price is required").
			WithDetail("field", "itemPriceId")
	}
	if !pctInSupplierRange(d.Percentage) {
		return apperror.NewValidation("supplier discount must be between 50 and 70 percent").
			WithDetail("field", "percentage").
			WithDetail("value", d.Percentage.String())
	}
	if d.AuthorizedBy == "" {
		return apperror.NewValidation("authorizing user is required").
			WithDetail("field", "authorizedBy")
	}
	return nil
}

func pctInSupplierRange(pct types.Money) bool {
	return pct.GreaterThanOrEqual(MinSupplierPct) && pct.LessThanOrEqual(MaxSupplierPct)
}

func validateDiscount(kind DiscountKind, value types.Money) error {
	if !kind.Valid() {
		return apperror.NewValidation("invalid discount kind").
			WithDetail("field", "discountKind").
			WithDetail("value", int(kind))
	}
	if kind == DiscountPercentage {
		if !value.IsPositive() || value.GreaterThan(types.Hundred) {
			return apperror.NewValidation("percentage discount must be in (0, 100]").
				WithDetail("field", "discountValue").
				WithDetail("value", value.String())
		}
		return nil
	}
	if value.IsNegative() {
		return apperror.NewValidation("fixed discount cannot be negative").
			WithDetail("field", "discountValue").
			WithDetail("value", value.String())
	}
	return nil
}

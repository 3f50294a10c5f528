package pricing

import (
	"context"
	"time"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/tx"
	"tarifario/internal/core/types"
	"tarifario/pkg/logger"
)

// Auditor records pricing mutations in the audit trail.
type Auditor interface {
	LogCreate(ctx context.Context, entityType string, entityID id.ID, changes map[string]any) error
	LogUpdate(ctx context.Context, entityType string, entityID id.ID, changes map[string]any) error
}

// Registrar handles supplier discount authorizations: the only sanctioned
// way to mark an item price as allowed below cost.
type Registrar struct {
	prices    ItemPriceRepository
	discounts SupplierDiscountRepository
	txManager tx.Manager
	audit     Auditor
}

// NewRegistrar creates a supplier discount registrar. audit may be nil.
func NewRegistrar(prices ItemPriceRepository, discounts SupplierDiscountRepository, txManager tx.Manager, audit Auditor) *Registrar {
	return &Registrar{
		prices:    prices,
		discounts: discounts,
		txManager: txManager,
		audit:     audit,
	}
}

// RegisterSupplierDiscount records a supplier-absorbed discount of pct
// percent on an item price and authorizes that price to sell below cost.
// The discount amount is computed from the base price at registration
// time. Both writes happen in one transaction: either the event is
// recorded and the price authorized, or neither.
func (r *Registrar) RegisterSupplierDiscount(ctx context.Context, itemPriceID id.ID, pct types.Money, authorizedBy string, notes *string) (*SupplierDiscount, error) {
	if !pctInSupplierRange(pct) {
		return nil, apperror.NewValidation("el descuento de proveedor debe estar entre 50 y 70 por ciento").
			WithDetail("percentage", pct.String())
	}
	if authorizedBy == "" {
		return nil, apperror.NewValidation("authorizing user is required").
			WithDetail("field", "authorizedBy")
	}

	var discount *SupplierDiscount
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		price, err := r.prices.GetForUpdate(ctx, itemPriceID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("item_price", itemPriceID.String())
			}
			return err
		}

		discount = &SupplierDiscount{
			ID:           id.New(),
			ItemPriceID:  itemPriceID,
			Percentage:   pct,
			Amount:       types.PercentOf(price.BasePrice, pct),
			AuthorizedBy: authorizedBy,
			AuthorizedAt: time.Now().UTC(),
			Notes:        notes,
		}
		if err := r.discounts.Create(ctx, discount); err != nil {
			return err
		}

		price.BelowCostAuthorized = true
		price.SupplierDiscountPct = &pct
		if err := r.prices.Update(ctx, price); err != nil {
			return err
		}

		if r.audit != nil {
			if err := r.audit.LogCreate(ctx, "supplier_discount", discount.ID, map[string]any{
				"item_price_id": itemPriceID.String(),
				"percentage":    pct.String(),
				"amount":        discount.Amount.String(),
				"authorized_by": authorizedBy,
			}); err != nil {
				return err
			}
			if err := r.audit.LogUpdate(ctx, "item_price", itemPriceID, map[string]any{
				"below_cost_authorized": map[string]any{"old": false, "new": true},
				"supplier_discount_pct": map[string]any{"old": nil, "new": pct.String()},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "supplier discount registered",
		"item_price_id", itemPriceID,
		"percentage", pct,
		"amount", discount.Amount,
		"authorized_by", authorizedBy,
	)

	return discount, nil
}

// History returns the authorization events of an item price, newest first.
func (r *Registrar) History(ctx context.Context, itemPriceID id.ID) ([]*SupplierDiscount, error) {
	return r.discounts.ListByItemPrice(ctx, itemPriceID)
}

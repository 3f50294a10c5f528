package pricing_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"tarifario/internal/core/id"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/storage/postgres"
)

const supplierDiscountTable = "prc_supplier_discounts"

// SupplierDiscountRepo implements pricing.SupplierDiscountRepository.
// The table is append-only: rows are authorization events, never
// updated or deleted.
type SupplierDiscountRepo struct {
	txm *postgres.TxManager
}

// NewSupplierDiscountRepo creates a new supplier discount repository.
func NewSupplierDiscountRepo(txm *postgres.TxManager) *SupplierDiscountRepo {
	return &SupplierDiscountRepo{txm: txm}
}

// Create inserts an authorization event.
func (r *SupplierDiscountRepo) Create(ctx context.Context, d *pricing.SupplierDiscount) error {
	sql := `
		INSERT INTO ` + supplierDiscountTable + ` (
			id, item_price_id, percentage, amount,
			authorized_by, authorized_at, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	q := r.txm.GetQuerier(ctx)
	_, err := q.Exec(ctx, sql,
		d.ID, d.ItemPriceID, d.Percentage, d.Amount,
		d.AuthorizedBy, d.AuthorizedAt, d.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert supplier discount: %w", err)
	}
	return nil
}

// ListByItemPrice retrieves the authorization events of an item price,
// newest first.
func (r *SupplierDiscountRepo) ListByItemPrice(ctx context.Context, itemPriceID id.ID) ([]*pricing.SupplierDiscount, error) {
	sql := `
		SELECT id, item_price_id, percentage, amount,
			   authorized_by, authorized_at, notes
		FROM ` + supplierDiscountTable + `
		WHERE item_price_id = $1
		ORDER BY authorized_at DESC
	`

	var items []*pricing.SupplierDiscount
	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &items, sql, itemPriceID); err != nil {
		return nil, fmt.Errorf("list supplier discounts: %w", err)
	}
	return items, nil
}

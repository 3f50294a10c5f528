package pricing_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/storage/postgres"
)

const itemPriceTable = "prc_item_prices"

const itemPriceColumns = `
	id, price_list_id, article_id,
	base_price, last_cost, purchase_price,
	below_cost_authorized, supplier_discount_pct, notes,
	version, created_at, updated_at`

// ItemPriceRepo implements pricing.ItemPriceRepository.
type ItemPriceRepo struct {
	txm *postgres.TxManager
}

// NewItemPriceRepo creates a new item price repository.
func NewItemPriceRepo(txm *postgres.TxManager) *ItemPriceRepo {
	return &ItemPriceRepo{txm: txm}
}

// Create inserts a new item price. The table carries a unique
// constraint on (price_list_id, article_id); violations surface as a
// duplicate error.
func (r *ItemPriceRepo) Create(ctx context.Context, p *pricing.ItemPrice) error {
	sql := `
		INSERT INTO ` + itemPriceTable + ` (
			id, price_list_id, article_id,
			base_price, last_cost, purchase_price,
			below_cost_authorized, supplier_discount_pct, notes,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	q := r.txm.GetQuerier(ctx)
	_, err := q.Exec(ctx, sql,
		p.ID, p.PriceListID, p.ArticleID,
		p.BasePrice, p.LastCost, p.PurchasePrice,
		p.BelowCostAuthorized, p.SupplierDiscountPct, p.Notes,
		p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("item_price", "article", p.ArticleID.String()).WithCause(err)
		}
		return fmt.Errorf("insert item price: %w", err)
	}
	return nil
}

// Update modifies an item price with optimistic locking.
func (r *ItemPriceRepo) Update(ctx context.Context, p *pricing.ItemPrice) error {
	sql := `
		UPDATE ` + itemPriceTable + ` SET
			base_price = $1,
			last_cost = $2,
			purchase_price = $3,
			below_cost_authorized = $4,
			supplier_discount_pct = $5,
			notes = $6,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $7 AND version = $8
	`

	q := r.txm.GetQuerier(ctx)
	result, err := q.Exec(ctx, sql,
		p.BasePrice, p.LastCost, p.PurchasePrice,
		p.BelowCostAuthorized, p.SupplierDiscountPct, p.Notes,
		p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("item_price", p.ID.String())
	}

	p.Version++
	return nil
}

func (r *ItemPriceRepo) getOne(ctx context.Context, sql string, args ...any) (*pricing.ItemPrice, error) {
	var p pricing.ItemPrice
	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, q, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item_price", args[0])
		}
		return nil, fmt.Errorf("get item price: %w", err)
	}
	return &p, nil
}

// GetByID retrieves an item price by ID.
func (r *ItemPriceRepo) GetByID(ctx context.Context, itemPriceID id.ID) (*pricing.ItemPrice, error) {
	sql := `SELECT ` + itemPriceColumns + ` FROM ` + itemPriceTable + ` WHERE id = $1`
	return r.getOne(ctx, sql, itemPriceID)
}

// GetByListAndArticle retrieves the unique row for (list, article).
func (r *ItemPriceRepo) GetByListAndArticle(ctx context.Context, priceListID, articleID id.ID) (*pricing.ItemPrice, error) {
	sql := `
		SELECT ` + itemPriceColumns + `
		FROM ` + itemPriceTable + `
		WHERE price_list_id = $1 AND article_id = $2
	`
	return r.getOne(ctx, sql, priceListID, articleID)
}

// GetForUpdate retrieves an item price with a row lock. Must run inside
// a transaction.
func (r *ItemPriceRepo) GetForUpdate(ctx context.Context, itemPriceID id.ID) (*pricing.ItemPrice, error) {
	sql := `SELECT ` + itemPriceColumns + ` FROM ` + itemPriceTable + ` WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, sql, itemPriceID)
}

// ListByList retrieves all prices of a list.
func (r *ItemPriceRepo) ListByList(ctx context.Context, priceListID id.ID) ([]*pricing.ItemPrice, error) {
	sql := `
		SELECT ` + itemPriceColumns + `
		FROM ` + itemPriceTable + `
		WHERE price_list_id = $1
		ORDER BY created_at ASC
	`

	var items []*pricing.ItemPrice
	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &items, sql, priceListID); err != nil {
		return nil, fmt.Errorf("list item prices: %w", err)
	}
	return items, nil
}

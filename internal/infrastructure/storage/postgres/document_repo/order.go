// Package document_repo provides PostgreSQL repositories for business
// documents.
package document_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/documents/order"
	"tarifario/internal/infrastructure/storage/postgres"
)

const (
	orderTable     = "doc_customer_orders"
	orderItemTable = "doc_customer_order_items"
)

const orderColumns = `
	id, deletion_mark, version,
	number, date, company_id, branch_id, comment,
	customer_id, channel, state, total,
	created_at, updated_at, created_by, updated_by`

const orderItemColumns = `
	id, order_id, article_id, quantity,
	unit_price, base_price, subtotal, line_no`

// OrderRepo implements order.Repository.
type OrderRepo struct {
	txm *postgres.TxManager
}

// NewOrderRepo creates a new customer order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{txm: txm}
}

// Create inserts the order header and its items. Items go through a
// single batch round-trip. Callers run this inside a transaction.
func (r *OrderRepo) Create(ctx context.Context, o *order.CustomerOrder) error {
	headerSQL := `
		INSERT INTO ` + orderTable + ` (
			id, deletion_mark, version,
			number, date, company_id, branch_id, comment,
			customer_id, channel, state, total,
			created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	q := r.txm.GetQuerier(ctx)
	_, err := q.Exec(ctx, headerSQL,
		o.ID, o.DeletionMark, o.Version,
		o.Number, o.Date, o.CompanyID, o.BranchID, o.Comment,
		o.CustomerID, o.Channel, o.State, o.Total,
		o.CreatedAt, o.UpdatedAt, o.CreatedBy, o.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemSQL := `
		INSERT INTO ` + orderItemTable + ` (
			id, order_id, article_id, quantity,
			unit_price, base_price, subtotal, line_no
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(itemSQL,
			item.ID, item.OrderID, item.ArticleID, item.Quantity,
			item.UnitPrice, item.BasePrice, item.Subtotal, item.LineNo,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range o.Items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return results.Close()
}

// GetByID retrieves an order with its items.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*order.CustomerOrder, error) {
	headerSQL := `SELECT ` + orderColumns + ` FROM ` + orderTable + ` WHERE id = $1`

	var o order.CustomerOrder
	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, q, &o, headerSQL, orderID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer_order", orderID.String())
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemSQL := `
		SELECT ` + orderItemColumns + `
		FROM ` + orderItemTable + `
		WHERE order_id = $1
		ORDER BY line_no ASC
	`
	if err := pgxscan.Select(ctx, q, &o.Items, itemSQL, orderID); err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	return &o, nil
}

// ListByCompany returns order headers for a company, newest first.
// Items are not loaded.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID id.ID, limit, offset int) ([]*order.CustomerOrder, error) {
	sql := `
		SELECT ` + orderColumns + `
		FROM ` + orderTable + `
		WHERE company_id = $1 AND deletion_mark = false
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectOrders(ctx, sql, companyID, limit, offset)
}

// ListByCustomer returns order headers for a customer, newest first.
// Items are not loaded.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID id.ID, limit, offset int) ([]*order.CustomerOrder, error) {
	sql := `
		SELECT ` + orderColumns + `
		FROM ` + orderTable + `
		WHERE customer_id = $1 AND deletion_mark = false
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectOrders(ctx, sql, customerID, limit, offset)
}

func (r *OrderRepo) selectOrders(ctx context.Context, sql string, args ...any) ([]*order.CustomerOrder, error) {
	var orders []*order.CustomerOrder
	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &orders, sql, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateState moves the order to a new state with optimistic locking.
func (r *OrderRepo) UpdateState(ctx context.Context, orderID id.ID, state order.OrderState, version int) error {
	sql := `
		UPDATE ` + orderTable + ` SET
			state = $1,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $2 AND version = $3
	`

	q := r.txm.GetQuerier(ctx)
	result, err := q.Exec(ctx, sql, state, orderID, version)
	if err != nil {
		return fmt.Errorf("update order state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("customer_order", orderID.String())
	}
	return nil
}

// SetDeletionMark sets or clears the soft-delete mark.
func (r *OrderRepo) SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error {
	sql := `
		UPDATE ` + orderTable + ` SET
			deletion_mark = $1,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $2
	`

	q := r.txm.GetQuerier(ctx)
	result, err := q.Exec(ctx, sql, mark, orderID)
	if err != nil {
		return fmt.Errorf("set order deletion mark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer_order", orderID.String())
	}
	return nil
}

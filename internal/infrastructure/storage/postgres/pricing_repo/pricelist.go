// Package pricing_repo provides PostgreSQL implementations for the
// pricing repositories: price lists, item prices, rules, combinations
// and supplier discount events.
package pricing_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/storage/postgres"
	"tarifario/internal/infrastructure/storage/postgres/catalog_repo"
)

const priceListTable = "prc_price_lists"

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// PriceListRepo implements pricing.PriceListRepository.
type PriceListRepo struct {
	*catalog_repo.BaseCatalogRepo[*pricing.PriceList]
	txm  *postgres.TxManager
	cols []string
}

// NewPriceListRepo creates a new price list repository.
func NewPriceListRepo(txm *postgres.TxManager) *PriceListRepo {
	cols := postgres.ExtractDBColumns[pricing.PriceList]()
	return &PriceListRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo[*pricing.PriceList](
			txm,
			priceListTable,
			cols,
			func() *pricing.PriceList { return &pricing.PriceList{} },
		),
		txm:  txm,
		cols: cols,
	}
}

// activeInVigency constrains a query to Active, non-deleted lists whose
// vigency window contains date.
func (r *PriceListRepo) activeInVigency(q squirrel.SelectBuilder, date time.Time) squirrel.SelectBuilder {
	return q.
		Where(squirrel.Eq{"deletion_mark": false, "state": entity.StateActive}).
		Where(squirrel.LtOrEq{"valid_from": date}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_to": nil},
			squirrel.GtOrEq{"valid_to": date},
		})
}

func (r *PriceListRepo) selectLists(ctx context.Context, q squirrel.SelectBuilder) ([]*pricing.PriceList, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*pricing.PriceList
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select price lists: %w", err)
	}
	return items, nil
}

// FindActiveByBranch retrieves Active branch-scoped lists in vigency at
// date, most recently started first.
func (r *PriceListRepo) FindActiveByBranch(ctx context.Context, branchID id.ID, date time.Time) ([]*pricing.PriceList, error) {
	q := builder().
		Select(r.cols...).
		From(priceListTable).
		Where(squirrel.Eq{"branch_id": branchID})
	q = r.activeInVigency(q, date).OrderBy("valid_from DESC")

	return r.selectLists(ctx, q)
}

// FindActiveByCompany retrieves Active company-wide lists (branch IS
// NULL) in vigency at date, most recently started first.
func (r *PriceListRepo) FindActiveByCompany(ctx context.Context, companyID id.ID, date time.Time) ([]*pricing.PriceList, error) {
	q := builder().
		Select(r.cols...).
		From(priceListTable).
		Where(squirrel.Eq{"company_id": companyID, "branch_id": nil})
	q = r.activeInVigency(q, date).OrderBy("valid_from DESC")

	return r.selectLists(ctx, q)
}

// ListActiveByScope retrieves all Active lists sharing the exact
// (company, branch) scope, regardless of vigency.
func (r *PriceListRepo) ListActiveByScope(ctx context.Context, companyID, branchID *id.ID) ([]*pricing.PriceList, error) {
	q := builder().
		Select(r.cols...).
		From(priceListTable).
		Where(squirrel.Eq{"deletion_mark": false, "state": entity.StateActive}).
		OrderBy("valid_from ASC")

	if companyID != nil {
		q = q.Where(squirrel.Eq{"company_id": *companyID})
	} else {
		q = q.Where(squirrel.Eq{"company_id": nil})
	}
	if branchID != nil {
		q = q.Where(squirrel.Eq{"branch_id": *branchID})
	} else {
		q = q.Where(squirrel.Eq{"branch_id": nil})
	}

	return r.selectLists(ctx, q)
}

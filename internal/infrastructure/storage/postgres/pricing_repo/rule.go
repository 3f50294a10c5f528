package pricing_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/storage/postgres"
	"tarifario/internal/infrastructure/storage/postgres/catalog_repo"
)

const priceRuleTable = "prc_price_rules"

// PriceRuleRepo implements pricing.PriceRuleRepository.
type PriceRuleRepo struct {
	*catalog_repo.BaseCatalogRepo[*pricing.PriceRule]
	txm  *postgres.TxManager
	cols []string
}

// NewPriceRuleRepo creates a new price rule repository.
func NewPriceRuleRepo(txm *postgres.TxManager) *PriceRuleRepo {
	cols := postgres.ExtractDBColumns[pricing.PriceRule]()
	return &PriceRuleRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo[*pricing.PriceRule](
			txm,
			priceRuleTable,
			cols,
			func() *pricing.PriceRule { return &pricing.PriceRule{} },
		),
		txm:  txm,
		cols: cols,
	}
}

// ListActiveByList retrieves Active rules of a list ordered by
// (priority asc, kind asc). The engine folds rules in exactly this
// order, so the ORDER BY here is load-bearing.
func (r *PriceRuleRepo) ListActiveByList(ctx context.Context, priceListID id.ID) ([]*pricing.PriceRule, error) {
	q := builder().
		Select(r.cols...).
		From(priceRuleTable).
		Where(squirrel.Eq{
			"price_list_id": priceListID,
			"deletion_mark": false,
			"state":         entity.StateActive,
		}).
		OrderBy("priority ASC", "kind ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*pricing.PriceRule
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list price rules: %w", err)
	}
	return items, nil
}

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

const combinationTable = "prc_combinations"

// CombinationRepo implements pricing.CombinationRepository.
type CombinationRepo struct {
	*catalog_repo.BaseCatalogRepo[*pricing.ProductCombination]
	txm  *postgres.TxManager
	cols []string
}

// NewCombinationRepo creates a new product combination repository.
func NewCombinationRepo(txm *postgres.TxManager) *CombinationRepo {
	cols := postgres.ExtractDBColumns[pricing.ProductCombination]()
	return &CombinationRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo[*pricing.ProductCombination](
			txm,
			combinationTable,
			cols,
			func() *pricing.ProductCombination { return &pricing.ProductCombination{} },
		),
		txm:  txm,
		cols: cols,
	}
}

// ListActiveByList retrieves Active combinations of a list.
func (r *CombinationRepo) ListActiveByList(ctx context.Context, priceListID id.ID) ([]*pricing.ProductCombination, error) {
	q := builder().
		Select(r.cols...).
		From(combinationTable).
		Where(squirrel.Eq{
			"price_list_id": priceListID,
			"deletion_mark": false,
			"state":         entity.StateActive,
		}).
		OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*pricing.ProductCombination
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list combinations: %w", err)
	}
	return items, nil
}

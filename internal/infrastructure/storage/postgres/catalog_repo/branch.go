package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/catalogs/branch"
	"tarifario/internal/infrastructure/storage/postgres"
)

const branchTable = "cat_branches"

// BranchRepo implements branch.Repository.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

// NewBranchRepo creates a new branch repository.
func NewBranchRepo(txm *postgres.TxManager) *BranchRepo {
	return &BranchRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*branch.Branch](
			txm,
			branchTable,
			postgres.ExtractDBColumns[branch.Branch](),
			func() *branch.Branch { return &branch.Branch{} },
		),
	}
}

// ListByCompany retrieves all branches of a company.
func (r *BranchRepo) ListByCompany(ctx context.Context, companyID id.ID) ([]*branch.Branch, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*branch.Branch
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return items, nil
}

// FindByCompanyAndCode retrieves a branch by its per-company code.
func (r *BranchRepo) FindByCompanyAndCode(ctx context.Context, companyID id.ID, code string) (*branch.Branch, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"company_id": companyID, "code": code}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("branch", code)
		}
		return nil, err
	}
	return item, nil
}

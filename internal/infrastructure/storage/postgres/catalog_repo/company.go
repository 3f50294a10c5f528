package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tarifario/internal/core/apperror"
	"tarifario/internal/domain/catalogs/company"
	"tarifario/internal/infrastructure/storage/postgres"
)

const companyTable = "cat_companies"

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseCatalogRepo[*company.Company]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txm *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*company.Company](
			txm,
			companyTable,
			postgres.ExtractDBColumns[company.Company](),
			func() *company.Company { return &company.Company{} },
		),
	}
}

// FindByRUC retrieves a company by tax identification number.
func (r *CompanyRepo) FindByRUC(ctx context.Context, ruc string) (*company.Company, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"ruc": ruc}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("company", ruc)
		}
		return nil, err
	}
	return item, nil
}

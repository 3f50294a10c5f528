package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tarifario/internal/core/apperror"
	"tarifario/internal/domain/catalogs/customer"
	"tarifario/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txm,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByDocument retrieves a customer by document number.
func (r *CustomerRepo) FindByDocument(ctx context.Context, documentNumber string) (*customer.Customer, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"document_number": documentNumber}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", documentNumber)
		}
		return nil, err
	}
	return item, nil
}

package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tarifario/internal/core/apperror"
	"tarifario/internal/domain/catalogs/vendor"
	"tarifario/internal/infrastructure/storage/postgres"
)

const vendorTable = "cat_vendors"

// VendorRepo implements vendor.Repository.
type VendorRepo struct {
	*BaseCatalogRepo[*vendor.Vendor]
}

// NewVendorRepo creates a new vendor repository.
func NewVendorRepo(txm *postgres.TxManager) *VendorRepo {
	return &VendorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*vendor.Vendor](
			txm,
			vendorTable,
			postgres.ExtractDBColumns[vendor.Vendor](),
			func() *vendor.Vendor { return &vendor.Vendor{} },
		),
	}
}

// FindByDocument retrieves a vendor by document number.
func (r *VendorRepo) FindByDocument(ctx context.Context, documentNumber string) (*vendor.Vendor, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"document_number": documentNumber}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("vendor", documentNumber)
		}
		return nil, err
	}
	return item, nil
}

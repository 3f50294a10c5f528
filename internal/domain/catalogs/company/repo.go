package company

import (
	"context"

	"tarifario/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	domain.CatalogRepository[*Company]

	// FindByRUC retrieves a company by tax identification number.
	FindByRUC(ctx context.Context, ruc string) (*Company, error)
}

package branch

import (
	"context"

	"tarifario/internal/core/id"
	"tarifario/internal/domain"
)

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.CatalogRepository[*Branch]

	// ListByCompany retrieves all branches of a company.
	ListByCompany(ctx context.Context, companyID id.ID) ([]*Branch, error)

	// FindByCompanyAndCode retrieves a branch by its per-company code.
	FindByCompanyAndCode(ctx context.Context, companyID id.ID, code string) (*Branch, error)
}

package customer

import (
	"context"

	"tarifario/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByDocument retrieves a customer by document number.
	FindByDocument(ctx context.Context, documentNumber string) (*Customer, error)
}

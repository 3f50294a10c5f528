package article

import (
	"context"

	"tarifario/internal/core/id"
	"tarifario/internal/domain"
)

// Repository defines the interface for Article persistence.
type Repository interface {
	domain.CatalogRepository[*Article]

	// FindByBarcode retrieves an article by barcode.
	FindByBarcode(ctx context.Context, barcode string) (*Article, error)

	// GetForUpdate retrieves an article with row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Article, error)
}

// GroupRepository defines the interface for Group persistence.
type GroupRepository interface {
	domain.CatalogRepository[*Group]
}

// LineRepository defines the interface for Line persistence.
type LineRepository interface {
	domain.CatalogRepository[*Line]
}

package article

import (
	"context"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/tx"
	"tarifario/internal/domain"
)

// Service provides business logic for Article catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Article]
	repo Repository
}

// NewService creates a new Article service.
func NewService(repo Repository, txManager tx.Manager, numerator numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Article]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "article",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkBarcodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkBarcodeUnique)

	return svc
}

// FindByBarcode retrieves an article by barcode.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*Article, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

// checkBarcodeUnique enforces barcode uniqueness across articles.
func (s *Service) checkBarcodeUnique(ctx context.Context, a *Article) error {
	if a.Barcode == nil || *a.Barcode == "" {
		return nil
	}

	existing, err := s.repo.FindByBarcode(ctx, *a.Barcode)
	if err != nil {
		return nil
	}
	if existing.ID != a.ID {
		return apperror.NewConflict("article with this barcode already exists").
			WithDetail("barcode", *a.Barcode)
	}
	return nil
}

// NewGroupService creates the service for the Group classifier.
func NewGroupService(repo GroupRepository, txManager tx.Manager, numerator numerator.Generator) *domain.CatalogService[*Group] {
	return domain.NewCatalogService(domain.CatalogServiceConfig[*Group]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "article_group",
	})
}

// NewLineService creates the service for the Line classifier.
func NewLineService(repo LineRepository, txManager tx.Manager, numerator numerator.Generator) *domain.CatalogService[*Line] {
	return domain.NewCatalogService(domain.CatalogServiceConfig[*Line]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "article_line",
	})
}

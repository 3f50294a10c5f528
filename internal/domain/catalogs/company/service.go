package company

import (
	"context"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/tx"
	"tarifario/internal/domain"
)

// Service provides business logic for Company catalog.
type Service struct {
	*domain.CatalogService[*Company]
	repo Repository
}

// NewService creates a new Company service.
func NewService(repo Repository, txManager tx.Manager, numerator numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Company]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "company",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkRUCUnique)
	base.Hooks().OnBeforeUpdate(svc.checkRUCUnique)

	return svc
}

// checkRUCUnique enforces that no two companies share a RUC.
func (s *Service) checkRUCUnique(ctx context.Context, c *Company) error {
	if c.RUC == nil || *c.RUC == "" {
		return nil
	}

	existing, err := s.repo.FindByRUC(ctx, *c.RUC)
	if err != nil {
		return nil
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("company with this RUC already exists").
			WithDetail("ruc", *c.RUC)
	}
	return nil
}

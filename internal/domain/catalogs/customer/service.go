package customer

import (
	"context"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/tx"
	"tarifario/internal/domain"
)

// Service provides business logic for Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, numerator numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkDocumentUnique)
	base.Hooks().OnBeforeUpdate(svc.checkDocumentUnique)

	return svc
}

// FindByDocument retrieves a customer by document number.
func (s *Service) FindByDocument(ctx context.Context, documentNumber string) (*Customer, error) {
	return s.repo.FindByDocument(ctx, documentNumber)
}

// checkDocumentUnique enforces document number uniqueness.
func (s *Service) checkDocumentUnique(ctx context.Context, c *Customer) error {
	if c.DocumentNumber == nil || *c.DocumentNumber == "" {
		return nil
	}

	existing, err := s.repo.FindByDocument(ctx, *c.DocumentNumber)
	if err != nil {
		return nil
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("customer with this document already exists").
			WithDetail("documentNumber", *c.DocumentNumber)
	}
	return nil
}

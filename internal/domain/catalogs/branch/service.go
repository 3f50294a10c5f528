package branch

import (
	"context"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/tx"
	"tarifario/internal/domain"
)

// Service provides business logic for Branch catalog.
type Service struct {
	*domain.CatalogService[*Branch]
	repo Repository
}

// NewService creates a new Branch service.
func NewService(repo Repository, txManager tx.Manager, numerator numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "branch",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkCodeUnique)

	return svc
}

// ListByCompany retrieves all branches of a company.
func (s *Service) ListByCompany(ctx context.Context, companyID id.ID) ([]*Branch, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// checkCodeUnique enforces the per-company unique branch code.
// Codes are unique within a company, not globally.
func (s *Service) checkCodeUnique(ctx context.Context, b *Branch) error {
	if b.Code == "" {
		return nil
	}

	existing, err := s.repo.FindByCompanyAndCode(ctx, b.CompanyID, b.Code)
	if err != nil {
		return nil
	}
	if existing.ID != b.ID {
		return apperror.NewConflict("branch code already used in this company").
			WithDetail("code", b.Code).
			WithDetail("companyId", b.CompanyID.String())
	}
	return nil
}

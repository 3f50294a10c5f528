package pricing

import (
	"context"
	"fmt"
	"time"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/tx"
	"tarifario/internal/domain"
)

// ListService provides business logic for the PriceList catalog.
// Write-time validation enforces the invariants the engine relies on:
// branch/company consistency and non-overlapping vigency per scope.
type ListService struct {
	*domain.CatalogService[*PriceList]
	repo     PriceListRepository
	branches BranchReader
}

// NewListService creates a price list service.
func NewListService(repo PriceListRepository, branches BranchReader, txManager tx.Manager, numerator numerator.Generator) *ListService {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*PriceList]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "price_list",
	})

	svc := &ListService{
		CatalogService: base,
		repo:           repo,
		branches:       branches,
	}

	base.Hooks().OnBeforeCreate(svc.checkScope)
	base.Hooks().OnBeforeCreate(svc.checkOverlap)
	base.Hooks().OnBeforeUpdate(svc.checkScope)
	base.Hooks().OnBeforeUpdate(svc.checkOverlap)

	return svc
}

// checkScope verifies that a branch-scoped list points at a branch of
// the declared company.
func (s *ListService) checkScope(ctx context.Context, l *PriceList) error {
	if l.BranchID == nil || l.CompanyID == nil {
		return nil
	}

	b, err := s.branches.GetByID(ctx, *l.BranchID)
	if err != nil {
		return apperror.NewNotFound("branch", l.BranchID.String())
	}
	if b.CompanyID != *l.CompanyID {
		return apperror.NewValidation("branch does not belong to the declared company").
			WithDetail("branchId", l.BranchID.String()).
			WithDetail("companyId", l.CompanyID.String())
	}
	return nil
}

// checkOverlap rejects a second Active list whose vigency intersects an
// existing one on the same (company, branch) scope. The resolver
// depends on this invariant to pick a single list deterministically.
func (s *ListService) checkOverlap(ctx context.Context, l *PriceList) error {
	if !l.State.IsActive() {
		return nil
	}

	existing, err := s.repo.ListActiveByScope(ctx, l.CompanyID, l.BranchID)
	if err != nil {
		return fmt.Errorf("list scope siblings: %w", err)
	}

	for _, other := range existing {
		if other.ID == l.ID {
			continue
		}
		if l.Overlaps(other) {
			return apperror.NewBusinessRule(apperror.CodePriceListOverlap,
				"la vigencia se superpone con otra lista de precios activa").
				WithDetail("conflictingListId", other.ID.String()).
				WithDetail("conflictingListName", other.Name)
		}
	}
	return nil
}

// ResolveActive is the HTTP-facing wrapper around the engine resolver;
// unlike the calculation path it surfaces "no list" as a NotFound error.
func (s *ListService) ResolveActive(ctx context.Context, engine *Engine, companyID id.ID, branchID *id.ID, date time.Time) (*PriceList, error) {
	list, err := engine.ResolveActiveList(ctx, companyID, branchID, date)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, apperror.NewNoActivePriceList(companyID.String())
	}
	return list, nil
}

// NewRuleService creates the service for the PriceRule catalog.
// Per-kind bound validation lives on the entity itself.
func NewRuleService(repo PriceRuleRepository, txManager tx.Manager, numerator numerator.Generator) *domain.CatalogService[*PriceRule] {
	return domain.NewCatalogService(domain.CatalogServiceConfig[*PriceRule]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "price_rule",
	})
}

// NewCombinationService creates the service for the ProductCombination
// catalog.
func NewCombinationService(repo CombinationRepository, txManager tx.Manager, numerator numerator.Generator) *domain.CatalogService[*ProductCombination] {
	return domain.NewCatalogService(domain.CatalogServiceConfig[*ProductCombination]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "product_combination",
	})
}

// ItemPriceService provides CRUD for item base prices. ItemPrice has no
// code or name, so it does not ride the generic catalog service.
type ItemPriceService struct {
	repo      ItemPriceRepository
	txManager tx.Manager
}

// NewItemPriceService creates an item price service.
func NewItemPriceService(repo ItemPriceRepository, txManager tx.Manager) *ItemPriceService {
	return &ItemPriceService{repo: repo, txManager: txManager}
}

// Create validates and stores a new base price record.
func (s *ItemPriceService) Create(ctx context.Context, p *ItemPrice) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	// Uniqueness per (list, article).
	existing, err := s.repo.GetByListAndArticle(ctx, p.PriceListID, p.ArticleID)
	if err == nil && existing != nil {
		return apperror.NewConflict("el artículo ya tiene precio en esta lista").
			WithDetail("priceListId", p.PriceListID.String()).
			WithDetail("articleId", p.ArticleID.String())
	}
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
}

// Update validates and stores changes to a base price record.
func (s *ItemPriceService) Update(ctx context.Context, p *ItemPrice) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
}

// GetByID retrieves a base price record.
func (s *ItemPriceService) GetByID(ctx context.Context, itemPriceID id.ID) (*ItemPrice, error) {
	return s.repo.GetByID(ctx, itemPriceID)
}

// ListByList retrieves all base prices of a list.
func (s *ItemPriceService) ListByList(ctx context.Context, priceListID id.ID) ([]*ItemPrice, error) {
	return s.repo.ListByList(ctx, priceListID)
}

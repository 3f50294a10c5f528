package pricing

import (
	"context"
	"time"

	"tarifario/internal/core/id"
	"tarifario/internal/domain"
	"tarifario/internal/domain/catalogs/article"
	"tarifario/internal/domain/catalogs/branch"
)

// PriceListRepository defines persistence for price lists.
type PriceListRepository interface {
	domain.CatalogRepository[*PriceList]

	// FindActiveByBranch retrieves Active branch-scoped lists in vigency
	// at date, most recently started first.
	FindActiveByBranch(ctx context.Context, branchID id.ID, date time.Time) ([]*PriceList, error)

	// FindActiveByCompany retrieves Active company-wide lists
	// (branch IS NULL) in vigency at date, most recently started first.
	FindActiveByCompany(ctx context.Context, companyID id.ID, date time.Time) ([]*PriceList, error)

	// ListActiveByScope retrieves all Active lists sharing the exact
	// (company, branch) scope. Used for overlap validation.
	ListActiveByScope(ctx context.Context, companyID, branchID *id.ID) ([]*PriceList, error)
}

// ItemPriceRepository defines persistence for item base prices.
type ItemPriceRepository interface {
	Create(ctx context.Context, p *ItemPrice) error
	Update(ctx context.Context, p *ItemPrice) error
	GetByID(ctx context.Context, itemPriceID id.ID) (*ItemPrice, error)

	// GetByListAndArticle retrieves the unique row for (list, article).
	GetByListAndArticle(ctx context.Context, priceListID, articleID id.ID) (*ItemPrice, error)

	// GetForUpdate retrieves the row with a lock for the registrar.
	GetForUpdate(ctx context.Context, itemPriceID id.ID) (*ItemPrice, error)

	// ListByList retrieves all prices of a list.
	ListByList(ctx context.Context, priceListID id.ID) ([]*ItemPrice, error)
}

// PriceRuleRepository defines persistence for price rules.
type PriceRuleRepository interface {
	domain.CatalogRepository[*PriceRule]

	// ListActiveByList retrieves Active rules of a list ordered by
	// (priority asc, kind asc). The ordering is a hard contract of the
	// rule engine.
	ListActiveByList(ctx context.Context, priceListID id.ID) ([]*PriceRule, error)
}

// CombinationRepository defines persistence for product combinations.
type CombinationRepository interface {
	domain.CatalogRepository[*ProductCombination]

	// ListActiveByList retrieves Active combinations of a list.
	ListActiveByList(ctx context.Context, priceListID id.ID) ([]*ProductCombination, error)
}

// SupplierDiscountRepository defines persistence for authorization events.
type SupplierDiscountRepository interface {
	Create(ctx context.Context, d *SupplierDiscount) error
	ListByItemPrice(ctx context.Context, itemPriceID id.ID) ([]*SupplierDiscount, error)
}

// ArticleReader is the engine's view of the article catalog
// (scope matching needs the article's group and line).
type ArticleReader interface {
	GetByID(ctx context.Context, articleID id.ID) (*article.Article, error)
}

// BranchReader is the list service's view of the branch catalog
// (scope validation needs the branch's owning company).
type BranchReader interface {
	GetByID(ctx context.Context, branchID id.ID) (*branch.Branch, error)
}

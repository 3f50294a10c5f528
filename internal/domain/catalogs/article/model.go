// Package article provides the Article catalog and its classifiers.
// Articles are the sellable items; groups and lines are flat classifiers
// used to scope price rules and combinations.
package article

import (
	"context"

	"github.com/shopspring/decimal"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
)

// Article represents a sellable item.
type Article struct {
	entity.Catalog

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// Presentation describes the selling unit (box, pack, unit)
	Presentation *string `db:"presentation" json:"presentation,omitempty"`

	// GroupID is the reference to the article group classifier
	GroupID *id.ID `db:"group_id" json:"groupId,omitempty"`

	// LineID is the reference to the article line classifier
	LineID *id.ID `db:"line_id" json:"lineId,omitempty"`

	// Stock is the current stock on hand
	Stock decimal.Decimal `db:"stock" json:"stock"`
}

// NewArticle creates a new Article with required fields.
func NewArticle(code, name string) *Article {
	return &Article{
		Catalog: entity.NewCatalog(code, name),
		Stock:   decimal.Zero,
	}
}

// Validate implements entity.Validatable interface.
func (a *Article) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Stock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}

	return nil
}

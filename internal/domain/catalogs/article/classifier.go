package article

import (
	"context"

	"tarifario/internal/core/entity"
)

// Group is a flat classifier of articles (category).
type Group struct {
	entity.Catalog

	Description *string `db:"description" json:"description,omitempty"`
}

// NewGroup creates a new article group.
func NewGroup(code, name string) *Group {
	return &Group{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable interface.
func (g *Group) Validate(ctx context.Context) error {
	return g.Catalog.Validate(ctx)
}

// Line is a flat classifier of articles (product line / brand family).
type Line struct {
	entity.Catalog

	Description *string `db:"description" json:"description,omitempty"`
}

// NewLine creates a new article line.
func NewLine(code, name string) *Line {
	return &Line{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable interface.
func (l *Line) Validate(ctx context.Context) error {
	return l.Catalog.Validate(ctx)
}

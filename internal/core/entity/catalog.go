package entity

import (
	"context"

	"tarifario/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Articles, Companies, Branches, Customers.
type Catalog struct {
	BaseCatalog

	// Code is a human-readable identifier (unique within the database)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// State controls whether the record participates in business operations
	State State `db:"state" json:"state"`

	// ParentID for hierarchical catalogs (nullable)
	ParentID *string `db:"parent_id" json:"parentId,omitempty"`

	// IsFolder indicates if this is a group (folder) in hierarchy
	IsFolder bool `db:"is_folder" json:"isFolder"`
}

// NewCatalog creates a new Catalog with generated ID and active state.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Code:        code,
		Name:        name,
		State:       StateActive,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !c.State.Valid() {
		return apperror.NewValidation("invalid state").
			WithDetail("field", "state").
			WithDetail("value", int(c.State))
	}

	// Code can be auto-generated, so it's optional at creation
	// but required at save time

	return nil
}

// GetCode returns the catalog code.
func (c *Catalog) GetCode() string {
	return c.Code
}

// SetCode assigns the catalog code (used by auto-numbering).
func (c *Catalog) SetCode(code string) {
	c.Code = code
}

// SetParent sets the parent reference.
func (c *Catalog) SetParent(parentID string) {
	if parentID == "" {
		c.ParentID = nil
	} else {
		c.ParentID = &parentID
	}
}

// IsRoot returns true if catalog has no parent.
func (c *Catalog) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

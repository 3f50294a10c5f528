// Package branch provides the Branch catalog.
// Branches are the physical locations of a company; price lists may be
// scoped to a branch or apply company-wide.
package branch

import (
	"context"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
)

// Branch represents a company location (store, warehouse, counter).
type Branch struct {
	entity.Catalog

	// CompanyID is the owning company (required)
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Address is the branch address
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the branch contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`
}

// NewBranch creates a new Branch with required fields.
func NewBranch(code, name string, companyID id.ID) *Branch {
	return &Branch{
		Catalog:   entity.NewCatalog(code, name),
		CompanyID: companyID,
	}
}

// Validate implements entity.Validatable interface.
func (b *Branch) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	return nil
}

// Package company provides the Company catalog.
// A company is the top-level commercial scope: price lists, branches
// and documents all hang off a company.
package company

import (
	"context"

	"tarifario/internal/core/entity"
)

// Company represents a legal entity operating the point of sale.
type Company struct {
	entity.Catalog

	// RUC is the tax identification number
	RUC *string `db:"ruc" json:"ruc,omitempty"`

	// Address is the fiscal address
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the main contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the main contact email
	Email *string `db:"email" json:"email,omitempty"`
}

// NewCompany creates a new Company with required fields.
func NewCompany(code, name string) *Company {
	return &Company{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Company) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

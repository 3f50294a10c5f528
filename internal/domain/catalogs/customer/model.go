// Package customer provides the Customer catalog.
package customer

import (
	"context"

	"tarifario/internal/core/entity"
)

// Customer represents a buyer referenced by sales orders.
type Customer struct {
	entity.Catalog

	// DocumentNumber is the identity or tax document (DNI/RUC)
	DocumentNumber *string `db:"document_number" json:"documentNumber,omitempty"`

	// Address is the customer address
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the contact email
	Email *string `db:"email" json:"email,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

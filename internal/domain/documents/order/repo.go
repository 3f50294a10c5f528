package order

import (
	"context"

	"tarifario/internal/core/id"
	"tarifario/internal/domain/catalogs/customer"
)

// Repository persists customer orders. Create stores the header and
// its items in one call; GetByID loads both.
type Repository interface {
	Create(ctx context.Context, o *CustomerOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*CustomerOrder, error)
	ListByCompany(ctx context.Context, companyID id.ID, limit, offset int) ([]*CustomerOrder, error)
	ListByCustomer(ctx context.Context, customerID id.ID, limit, offset int) ([]*CustomerOrder, error)
	UpdateState(ctx context.Context, orderID id.ID, state OrderState, version int) error
	SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error
}

// CustomerReader is the slice of the customer catalog the order
// service needs (existence and state checks).
type CustomerReader interface {
	GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error)
}

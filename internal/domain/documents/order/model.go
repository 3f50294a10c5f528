// Package order provides the customer sales order document.
// Line prices come from the pricing engine at creation time; the order
// stores the calculated prices so later list changes do not rewrite
// history.
package order

import (
	"context"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/pricing"
)

// OrderState tracks the lifecycle of a customer order.
// Values mirror the legacy POS database and must not be renumbered.
type OrderState int

const (
	StatePending    OrderState = 1
	StateProcessing OrderState = 2
	StateCompleted  OrderState = 3
	StateCancelled  OrderState = 4
)

// Valid reports whether s is a known order state.
func (s OrderState) Valid() bool {
	return s >= StatePending && s <= StateCancelled
}

func (s OrderState) String() string {
	switch s {
	case StatePending:
		return "Pendiente"
	case StateProcessing:
		return "En Proceso"
	case StateCompleted:
		return "Completado"
	case StateCancelled:
		return "Cancelado"
	default:
		return "unknown"
	}
}

// canTransition encodes the allowed lifecycle moves. Completed and
// cancelled orders are terminal.
func (s OrderState) canTransition(to OrderState) bool {
	switch s {
	case StatePending:
		return to == StateProcessing || to == StateCancelled
	case StateProcessing:
		return to == StateCompleted || to == StateCancelled
	default:
		return false
	}
}

// CustomerOrder is a sales order priced by the engine.
type CustomerOrder struct {
	entity.Document

	// CustomerID is the buyer (required)
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Channel is the sales channel the order was taken through
	Channel pricing.SalesChannel `db:"channel" json:"channel"`

	// State is the lifecycle state
	State OrderState `db:"state" json:"state"`

	// Total is the sum of line subtotals at calculation time
	Total types.Money `db:"total" json:"total"`

	// Items are the order lines (loaded separately)
	Items []OrderItem `db:"-" json:"items"`
}

// OrderItem is one priced line of a customer order.
type OrderItem struct {
	ID      id.ID `db:"id" json:"id"`
	OrderID id.ID `db:"order_id" json:"orderId"`

	ArticleID id.ID `db:"article_id" json:"articleId"`
	Quantity  int   `db:"quantity" json:"quantity"`

	// UnitPrice is the engine's final price for one unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// BasePrice is the list price before rules, kept for audit
	BasePrice types.Money `db:"base_price" json:"basePrice"`

	// Subtotal = unit_price * quantity
	Subtotal types.Money `db:"subtotal" json:"subtotal"`

	LineNo int `db:"line_no" json:"lineNo"`
}

// NewCustomerOrder creates an order in the pending state.
func NewCustomerOrder(companyID, customerID id.ID, channel pricing.SalesChannel) *CustomerOrder {
	return &CustomerOrder{
		Document:   entity.NewDocument(companyID),
		CustomerID: customerID,
		Channel:    channel,
		State:      StatePending,
	}
}

// Validate implements entity.Validatable interface.
func (o *CustomerOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if !o.Channel.Valid() {
		return apperror.NewValidation("invalid sales channel").
			WithDetail("field", "channel").
			WithDetail("value", int(o.Channel))
	}
	if !o.State.Valid() {
		return apperror.NewValidation("invalid order state").
			WithDetail("field", "state").
			WithDetail("value", int(o.State))
	}
	if len(o.Items) == 0 {
		return apperror.NewValidation("order requires at least one item").
			WithDetail("field", "items")
	}

	for i, item := range o.Items {
		if id.IsNil(item.ArticleID) {
			return apperror.NewValidation("order item requires an article").
				WithDetail("field", "items").
				WithDetail("line", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("order item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("line", i+1)
		}
	}

	return nil
}

// Transition moves the order to a new lifecycle state.
func (o *CustomerOrder) Transition(to OrderState) error {
	if !to.Valid() {
		return apperror.NewValidation("invalid order state").
			WithDetail("field", "state").
			WithDetail("value", int(to))
	}
	if !o.State.canTransition(to) {
		return apperror.NewBusinessRule("ORDER_STATE_TRANSITION",
			"el pedido no admite este cambio de estado").
			WithDetail("from", o.State.String()).
			WithDetail("to", to.String())
	}
	o.State = to
	return nil
}

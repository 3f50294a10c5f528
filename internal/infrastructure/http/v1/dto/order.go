package dto

import (
	"time"

	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/documents/order"
	"tarifario/internal/domain/pricing"
)

// OrderLineRequest is one unpriced line of an order creation request.
type OrderLineRequest struct {
	ArticleID id.ID `json:"articleId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest registers a new customer order. Prices are never
// accepted from the client; every line is priced server-side.
type CreateOrderRequest struct {
	CompanyID  id.ID                `json:"companyId" binding:"required"`
	BranchID   *id.ID               `json:"branchId"`
	CustomerID id.ID                `json:"customerId" binding:"required"`
	Channel    pricing.SalesChannel `json:"channel" binding:"required"`
	Date       *time.Time           `json:"date"`
	Comment    string               `json:"comment"`
	Lines      []OrderLineRequest   `json:"lines" binding:"required,min=1,dive"`
}

// ToInput converts the request to the service input.
func (r CreateOrderRequest) ToInput() order.CreateInput {
	in := order.CreateInput{
		CompanyID:  r.CompanyID,
		BranchID:   r.BranchID,
		CustomerID: r.CustomerID,
		Channel:    r.Channel,
		Date:       r.Date,
		Comment:    r.Comment,
	}
	for _, line := range r.Lines {
		in.Lines = append(in.Lines, order.LineInput{
			ArticleID: line.ArticleID,
			Quantity:  line.Quantity,
		})
	}
	return in
}

// ChangeOrderStateRequest moves an order through its lifecycle.
type ChangeOrderStateRequest struct {
	State order.OrderState `json:"state" binding:"required"`
}

// OrderItemResponse is one priced order line.
type OrderItemResponse struct {
	ID        string      `json:"id"`
	ArticleID string      `json:"articleId"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	BasePrice types.Money `json:"basePrice"`
	Subtotal  types.Money `json:"subtotal"`
	LineNo    int         `json:"lineNo"`
}

// OrderResponse is the API representation of a customer order.
type OrderResponse struct {
	DocumentResponse
	CustomerID string              `json:"customerId"`
	Channel    int                 `json:"channel"`
	State      int                 `json:"state"`
	StateName  string              `json:"stateName"`
	Total      types.Money         `json:"total"`
	Items      []OrderItemResponse `json:"items,omitempty"`
}

// FromOrder creates an OrderResponse.
func FromOrder(o *order.CustomerOrder) *OrderResponse {
	resp := &OrderResponse{
		DocumentResponse: FromDocument(o.Document),
		CustomerID:       o.CustomerID.String(),
		Channel:          int(o.Channel),
		State:            int(o.State),
		StateName:        o.State.String(),
		Total:            o.Total,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        item.ID.String(),
			ArticleID: item.ArticleID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			BasePrice: item.BasePrice,
			Subtotal:  item.Subtotal,
			LineNo:    item.LineNo,
		})
	}
	return resp
}

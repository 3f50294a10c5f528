package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/documents/order"
	"tarifario/internal/infrastructure/http/v1/dto"
)

// OrderHandler exposes customer order documents.
type OrderHandler struct {
	*BaseHandler
	orders *order.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, orders *order.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, orders: orders}
}

// Create handles POST /document/customer-orders.
func (h *OrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orders.Create(ctx, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromOrder(o))
}

// Get handles GET /document/customer-orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	o, err := h.orders.GetByID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(o))
}

// List handles GET /document/customer-orders.
// Query params: companyId or customerId (one required), limit, offset.
func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	var (
		orders []*order.CustomerOrder
		err    error
	)
	switch {
	case c.Query("customerId") != "":
		customerID, parseErr := id.Parse(c.Query("customerId"))
		if parseErr != nil {
			h.Error(c, apperror.NewValidation("invalid customerId").WithDetail("customerId", c.Query("customerId")))
			return
		}
		orders, err = h.orders.ListByCustomer(ctx, customerID, limit, offset)
	case c.Query("companyId") != "":
		companyID, parseErr := id.Parse(c.Query("companyId"))
		if parseErr != nil {
			h.Error(c, apperror.NewValidation("invalid companyId").WithDetail("companyId", c.Query("companyId")))
			return
		}
		orders, err = h.orders.ListByCompany(ctx, companyID, limit, offset)
	default:
		h.Error(c, apperror.NewValidation("companyId or customerId is required"))
		return
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		items[i] = dto.FromOrder(o)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ChangeState handles POST /document/customer-orders/:id/state.
func (h *OrderHandler) ChangeState(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ChangeOrderStateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.orders.ChangeState(ctx, orderID, req.State)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(o))
}

// SetDeletionMark handles POST /document/customer-orders/:id/deletion-mark.
func (h *OrderHandler) SetDeletionMark(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.orders.SetDeletionMark(ctx, orderID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/tx"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/audit"
	"tarifario/internal/domain/pricing"
	"tarifario/pkg/logger"
)

// LineInput is an unpriced order line as received from the caller.
type LineInput struct {
	ArticleID id.ID
	Quantity  int
}

// CreateInput carries everything needed to register a new order.
type CreateInput struct {
	CompanyID  id.ID
	BranchID   *id.ID
	CustomerID id.ID
	Channel    pricing.SalesChannel
	Date       *time.Time
	Comment    string
	Lines      []LineInput
}

// Service registers and manages customer orders. Every line is priced
// through the calculation engine at creation time.
type Service struct {
	repo      Repository
	customers CustomerReader
	engine    *pricing.Engine
	txManager tx.Manager
	numerator numerator.Generator
}

// NewService creates the order service.
func NewService(repo Repository, customers CustomerReader, engine *pricing.Engine, txManager tx.Manager, gen numerator.Generator) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		engine:    engine,
		txManager: txManager,
		numerator: gen,
	}
}

// Create prices and persists a new customer order.
//
// Lines are priced sequentially: each calculation sees the running
// total of the lines priced before it, so order-total scale rules
// kick in as the order grows. A line the engine cannot price (no
// active list, unknown article, no base price) rejects the whole
// order with the engine's message.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CustomerOrder, error) {
	if len(in.Lines) == 0 {
		return nil, apperror.NewValidation("order requires at least one item").
			WithDetail("field", "lines")
	}

	cust, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", in.CustomerID.String())
		}
		return nil, err
	}
	if !cust.State.IsActive() || cust.DeletionMark {
		return nil, apperror.NewBusinessRule("CUSTOMER_INACTIVE",
			"el cliente no está activo").
			WithDetail("customerId", in.CustomerID.String())
	}

	o := NewCustomerOrder(in.CompanyID, in.CustomerID, in.Channel)
	o.BranchID = in.BranchID
	o.Comment = in.Comment
	if in.Date != nil {
		o.Date = in.Date.UTC()
	}

	channel := in.Channel
	runningTotal := types.Zero()
	for i, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewValidation("order item quantity must be positive").
				WithDetail("line", i+1)
		}

		result, err := s.engine.CalculatePrice(ctx, pricing.CalcRequest{
			CompanyID:  in.CompanyID,
			BranchID:   in.BranchID,
			ArticleID:  line.ArticleID,
			Channel:    &channel,
			Quantity:   line.Quantity,
			OrderTotal: runningTotal,
			Date:       &o.Date,
		})
		if err != nil {
			return nil, err
		}
		if result.Error != "" {
			return nil, apperror.NewBusinessRule("ORDER_LINE_UNPRICEABLE", result.Error).
				WithDetail("line", i+1).
				WithDetail("articleId", line.ArticleID.String())
		}

		subtotal := result.FinalPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		o.Items = append(o.Items, OrderItem{
			ID:        id.New(),
			OrderID:   o.ID,
			ArticleID: line.ArticleID,
			Quantity:  line.Quantity,
			UnitPrice: result.FinalPrice,
			BasePrice: result.BasePrice,
			Subtotal:  subtotal,
			LineNo:    i + 1,
		})
		runningTotal = runningTotal.Add(subtotal)
	}
	o.Total = runningTotal

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ORD"), nil, o.Date)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("generate order number: %w", err))
	}
	o.Number = number
	audit.EnrichCreatedBy(ctx, &o.CreatedBy, &o.UpdatedBy)

	if err := o.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer order created",
		"order_id", o.ID.String(),
		"number", o.Number,
		"customer_id", o.CustomerID.String(),
		"lines", len(o.Items),
		"total", o.Total.String(),
	)
	return o, nil
}

// GetByID loads an order with its items.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*CustomerOrder, error) {
	return s.repo.GetByID(ctx, orderID)
}

// ListByCompany returns the company's orders, newest first.
func (s *Service) ListByCompany(ctx context.Context, companyID id.ID, limit, offset int) ([]*CustomerOrder, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByCompany(ctx, companyID, limit, offset)
}

// ListByCustomer returns the customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID id.ID, limit, offset int) ([]*CustomerOrder, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}

// ChangeState moves an order through its lifecycle with optimistic
// locking against the loaded version.
func (s *Service) ChangeState(ctx context.Context, orderID id.ID, to OrderState) (*CustomerOrder, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Transition(to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateState(ctx, o.ID, o.State, o.Version); err != nil {
		return nil, err
	}
	o.Version++

	logger.Info(ctx, "customer order state changed",
		"order_id", o.ID.String(),
		"state", o.State.String(),
	)
	return o, nil
}

// SetDeletionMark soft-deletes (or restores) an order.
func (s *Service) SetDeletionMark(ctx context.Context, orderID id.ID, mark bool) error {
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return err
	}
	return s.repo.SetDeletionMark(ctx, orderID, mark)
}

package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/pricing"
)

func validOrder() *CustomerOrder {
	o := NewCustomerOrder(id.New(), id.New(), pricing.ChannelCounter)
	o.Items = []OrderItem{
		{
			ID:        id.New(),
			OrderID:   o.ID,
			ArticleID: id.New(),
			Quantity:  2,
			UnitPrice: types.MustMoney("50"),
			BasePrice: types.MustMoney("50"),
			Subtotal:  types.MustMoney("100"),
			LineNo:    1,
		},
	}
	o.Total = types.MustMoney("100")
	return o
}

func TestNewCustomerOrder_StartsPending(t *testing.T) {
	o := NewCustomerOrder(id.New(), id.New(), pricing.ChannelOnline)
	assert.Equal(t, StatePending, o.State)
	assert.False(t, o.Date.IsZero())
}

func TestCustomerOrder_Validate(t *testing.T) {
	require.NoError(t, validOrder().Validate(context.Background()))

	t.Run("requires customer", func(t *testing.T) {
		o := validOrder()
		o.CustomerID = id.Nil()
		assert.Error(t, o.Validate(context.Background()))
	})

	t.Run("requires valid channel", func(t *testing.T) {
		o := validOrder()
		o.Channel = pricing.SalesChannel(99)
		assert.Error(t, o.Validate(context.Background()))
	})

	t.Run("requires at least one item", func(t *testing.T) {
		o := validOrder()
		o.Items = nil
		assert.Error(t, o.Validate(context.Background()))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := validOrder()
		o.Items[0].Quantity = 0
		assert.Error(t, o.Validate(context.Background()))
	})

	t.Run("rejects item without article", func(t *testing.T) {
		o := validOrder()
		o.Items[0].ArticleID = id.Nil()
		assert.Error(t, o.Validate(context.Background()))
	})
}

func TestOrderState_String(t *testing.T) {
	assert.Equal(t, "Pendiente", StatePending.String())
	assert.Equal(t, "En Proceso", StateProcessing.String())
	assert.Equal(t, "Completado", StateCompleted.String())
	assert.Equal(t, "Cancelado", StateCancelled.String())
}

func TestCustomerOrder_Transition(t *testing.T) {
	moves := []struct {
		from    OrderState
		to      OrderState
		allowed bool
	}{
		{StatePending, StateProcessing, true},
		{StatePending, StateCancelled, true},
		{StatePending, StateCompleted, false},
		{StateProcessing, StateCompleted, true},
		{StateProcessing, StateCancelled, true},
		{StateProcessing, StatePending, false},
		{StateCompleted, StateCancelled, false},
		{StateCancelled, StatePending, false},
	}

	for _, m := range moves {
		o := validOrder()
		o.State = m.from
		err := o.Transition(m.to)
		if m.allowed {
			assert.NoError(t, err, "%s -> %s", m.from, m.to)
			assert.Equal(t, m.to, o.State)
			continue
		}
		require.Error(t, err, "%s -> %s", m.from, m.to)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "ORDER_STATE_TRANSITION", appErr.Code)
		assert.Equal(t, m.from, o.State, "state must not change on a rejected move")
	}
}

func TestCustomerOrder_TransitionRejectsUnknownState(t *testing.T) {
	o := validOrder()
	err := o.Transition(OrderState(42))
	require.Error(t, err)
	assert.Equal(t, StatePending, o.State)
}

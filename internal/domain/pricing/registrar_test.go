package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type registrarPriceRepo struct {
	ItemPriceRepository
	rows    map[id.ID]*ItemPrice
	updated *ItemPrice
}

func (f *registrarPriceRepo) GetForUpdate(_ context.Context, itemPriceID id.ID) (*ItemPrice, error) {
	if p, ok := f.rows[itemPriceID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("item_price", itemPriceID.String())
}

func (f *registrarPriceRepo) Update(_ context.Context, p *ItemPrice) error {
	f.updated = p
	return nil
}

type registrarDiscountRepo struct {
	SupplierDiscountRepository
	created   []*SupplierDiscount
	createErr error
}

func (f *registrarDiscountRepo) Create(_ context.Context, d *SupplierDiscount) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, d)
	return nil
}

func (f *registrarDiscountRepo) ListByItemPrice(_ context.Context, _ id.ID) ([]*SupplierDiscount, error) {
	return f.created, nil
}

type registrarFixture struct {
	registrar   *Registrar
	prices      *registrarPriceRepo
	discounts   *registrarDiscountRepo
	itemPriceID id.ID
}

func newRegistrarFixture(t *testing.T) *registrarFixture {
	t.Helper()

	ip := NewItemPrice(id.New(), id.New(), types.MustMoney("200"))
	ip.LastCost = types.MustMoney("150")

	prices := &registrarPriceRepo{rows: map[id.ID]*ItemPrice{ip.ID: ip}}
	discounts := &registrarDiscountRepo{}

	return &registrarFixture{
		registrar:   NewRegistrar(prices, discounts, fakeTxManager{}, nil),
		prices:      prices,
		discounts:   discounts,
		itemPriceID: ip.ID,
	}
}

func TestRegisterSupplierDiscount_PercentageBounds(t *testing.T) {
	f := newRegistrarFixture(t)

	for _, pct := range []string{"49", "70.01", "0", "-10"} {
		_, err := f.registrar.RegisterSupplierDiscount(context.Background(), f.itemPriceID, types.MustMoney(pct), "user-1", nil)
		require.Error(t, err, "pct %s", pct)
		assert.ErrorContains(t, err, "el descuento de proveedor debe estar entre 50 y 70 por ciento")
	}
	assert.Empty(t, f.discounts.created, "rejected percentages must not touch the repositories")

	for _, pct := range []string{"50", "70"} {
		_, err := f.registrar.RegisterSupplierDiscount(context.Background(), f.itemPriceID, types.MustMoney(pct), "user-1", nil)
		assert.NoError(t, err, "pct %s is inside the inclusive range", pct)
	}
}

func TestRegisterSupplierDiscount_RequiresAuthorizer(t *testing.T) {
	f := newRegistrarFixture(t)

	_, err := f.registrar.RegisterSupplierDiscount(context.Background(), f.itemPriceID, types.MustMoney("60"), "", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "authorizing user is required")
}

func TestRegisterSupplierDiscount_ItemPriceNotFound(t *testing.T) {
	f := newRegistrarFixture(t)

	_, err := f.registrar.RegisterSupplierDiscount(context.Background(), id.New(), types.MustMoney("60"), "user-1", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRegisterSupplierDiscount_RecordsAndAuthorizes(t *testing.T) {
	f := newRegistrarFixture(t)

	notes := "autorizado por el proveedor"
	discount, err := f.registrar.RegisterSupplierDiscount(context.Background(), f.itemPriceID, types.MustMoney("60"), "user-1", &notes)
	require.NoError(t, err)
	require.NotNil(t, discount)

	assert.Equal(t, f.itemPriceID, discount.ItemPriceID)
	assert.Equal(t, "user-1", discount.AuthorizedBy)
	assert.False(t, discount.AuthorizedAt.IsZero())
	// 60% of the base price of 200.
	assert.True(t, discount.Amount.Equal(types.MustMoney("120")), "amount: %s", discount.Amount)

	require.Len(t, f.discounts.created, 1)
	require.NotNil(t, f.prices.updated)
	assert.True(t, f.prices.updated.BelowCostAuthorized)
	require.NotNil(t, f.prices.updated.SupplierDiscountPct)
	assert.True(t, f.prices.updated.SupplierDiscountPct.Equal(types.MustMoney("60")))
}

func TestRegisterSupplierDiscount_CreateFailureSkipsAuthorization(t *testing.T) {
	f := newRegistrarFixture(t)
	f.discounts.createErr = errors.New("insert failed")

	_, err := f.registrar.RegisterSupplierDiscount(context.Background(), f.itemPriceID, types.MustMoney("60"), "user-1", nil)
	require.Error(t, err)
	assert.Nil(t, f.prices.updated)
}

func TestHistory_ReturnsRegisteredDiscounts(t *testing.T) {
	f := newRegistrarFixture(t)

	_, err := f.registrar.RegisterSupplierDiscount(context.Background(), f.itemPriceID, types.MustMoney("55"), "user-1", nil)
	require.NoError(t, err)

	history, err := f.registrar.History(context.Background(), f.itemPriceID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Percentage.Equal(types.MustMoney("55")))
}

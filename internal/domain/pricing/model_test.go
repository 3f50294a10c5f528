package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPriceList_InVigency(t *testing.T) {
	now := time.Now()
	list := NewPriceList("LST-001", "General", ListNormal, now.AddDate(0, -1, 0))

	assert.True(t, list.InVigency(now), "open-ended list is in vigency after valid_from")
	assert.False(t, list.InVigency(now.AddDate(0, -2, 0)), "not in vigency before valid_from")

	list.ValidTo = timePtr(now.AddDate(0, 0, -1))
	assert.False(t, list.InVigency(now), "not in vigency after valid_to")
	assert.True(t, list.InVigency(now.AddDate(0, 0, -1)), "valid_to itself is inclusive")
}

func TestPriceList_Overlaps(t *testing.T) {
	now := time.Now()

	a := NewPriceList("LST-A", "A", ListNormal, now)
	a.ValidTo = timePtr(now.AddDate(0, 1, 0))

	b := NewPriceList("LST-B", "B", ListNormal, now.AddDate(0, 0, 15))
	assert.True(t, a.Overlaps(b), "open-ended list starting inside the range overlaps")
	assert.True(t, b.Overlaps(a))

	c := NewPriceList("LST-C", "C", ListNormal, now.AddDate(0, 2, 0))
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))
}

func TestPriceList_Validate(t *testing.T) {
	companyID := id.New()
	now := time.Now()

	valid := func() *PriceList {
		l := NewPriceList("LST-001", "General", ListNormal, now)
		l.CompanyID = &companyID
		return l
	}

	require.NoError(t, valid().Validate(context.Background()))

	t.Run("requires scope", func(t *testing.T) {
		l := valid()
		l.CompanyID = nil
		assert.Error(t, l.Validate(context.Background()))
	})

	t.Run("rejects inverted vigency range", func(t *testing.T) {
		l := valid()
		l.ValidTo = timePtr(now.AddDate(0, 0, -1))
		assert.Error(t, l.Validate(context.Background()))
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		l := valid()
		l.Kind = PriceListKind(99)
		assert.Error(t, l.Validate(context.Background()))
	})
}

func TestItemPrice_Validate_BelowCostGuard(t *testing.T) {
	listID := id.New()
	articleID := id.New()

	ip := NewItemPrice(listID, articleID, types.MustMoney("80"))
	ip.LastCost = types.MustMoney("100")

	err := ip.Validate(context.Background())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBelowCost, appErr.Code)

	// Authorization alone is not enough; the supplier percentage must be
	// on record too.
	ip.BelowCostAuthorized = true
	assert.Error(t, ip.Validate(context.Background()))

	pct := types.MustMoney("60")
	ip.SupplierDiscountPct = &pct
	assert.NoError(t, ip.Validate(context.Background()))
}

func TestItemPrice_Validate_SupplierPctRange(t *testing.T) {
	ip := NewItemPrice(id.New(), id.New(), types.MustMoney("100"))

	out := types.MustMoney("49")
	ip.SupplierDiscountPct = &out
	assert.Error(t, ip.Validate(context.Background()))

	in := types.MustMoney("50")
	ip.SupplierDiscountPct = &in
	assert.NoError(t, ip.Validate(context.Background()))
}

func TestPriceRule_Validate(t *testing.T) {
	listID := id.New()

	t.Run("channel rule requires channel", func(t *testing.T) {
		r := NewPriceRule("RGL-001", "Mayorista", listID, RuleChannelBased)
		r.DiscountKind = DiscountPercentage
		r.DiscountValue = types.MustMoney("10")
		assert.Error(t, r.Validate(context.Background()))

		ch := ChannelWholesale
		r.Channel = &ch
		assert.NoError(t, r.Validate(context.Background()))
	})

	t.Run("unit scale rejects inverted bounds", func(t *testing.T) {
		r := NewPriceRule("RGL-002", "Escala", listID, RuleUnitScale)
		r.QtyMin = intPtr(10)
		r.QtyMax = intPtr(5)
		r.DiscountKind = DiscountPercentage
		r.DiscountValue = types.MustMoney("5")
		assert.Error(t, r.Validate(context.Background()))
	})

	t.Run("scale rules accept a single bound", func(t *testing.T) {
		// "Up to 10 units" style rules carry only a maximum.
		r := NewPriceRule("RGL-006", "Hasta 10", listID, RuleUnitScale)
		r.QtyMax = intPtr(10)
		r.DiscountKind = DiscountPercentage
		r.DiscountValue = types.MustMoney("5")
		assert.NoError(t, r.Validate(context.Background()))

		amountMax := types.MustMoney("500")
		a := NewPriceRule("RGL-007", "Hasta 500", listID, RuleAmountScale)
		a.AmountMax = &amountMax
		a.DiscountKind = DiscountPercentage
		a.DiscountValue = types.MustMoney("5")
		assert.NoError(t, a.Validate(context.Background()))

		totalMax := types.MustMoney("1000")
		o := NewPriceRule("RGL-008", "Pedidos chicos", listID, RuleOrderTotalScale)
		o.OrderTotalMax = &totalMax
		o.DiscountKind = DiscountPercentage
		o.DiscountValue = types.MustMoney("5")
		assert.NoError(t, o.Validate(context.Background()))
	})

	t.Run("scale rules require at least one bound", func(t *testing.T) {
		r := NewPriceRule("RGL-009", "Sin rango", listID, RuleUnitScale)
		r.DiscountKind = DiscountPercentage
		r.DiscountValue = types.MustMoney("5")
		assert.Error(t, r.Validate(context.Background()))

		a := NewPriceRule("RGL-010", "Sin rango", listID, RuleAmountScale)
		a.DiscountKind = DiscountPercentage
		a.DiscountValue = types.MustMoney("5")
		assert.Error(t, a.Validate(context.Background()))

		o := NewPriceRule("RGL-011", "Sin rango", listID, RuleOrderTotalScale)
		o.DiscountKind = DiscountPercentage
		o.DiscountValue = types.MustMoney("5")
		assert.Error(t, o.Validate(context.Background()))
	})

	t.Run("combination kind is rejected", func(t *testing.T) {
		r := NewPriceRule("RGL-003", "Combo", listID, RuleProductCombination)
		r.DiscountKind = DiscountPercentage
		r.DiscountValue = types.MustMoney("5")
		assert.Error(t, r.Validate(context.Background()))
	})

	t.Run("percentage discount bounds", func(t *testing.T) {
		ch := ChannelCounter
		r := NewPriceRule("RGL-004", "Mostrador", listID, RuleChannelBased)
		r.Channel = &ch
		r.DiscountKind = DiscountPercentage

		r.DiscountValue = types.MustMoney("0")
		assert.Error(t, r.Validate(context.Background()))

		r.DiscountValue = types.MustMoney("100.01")
		assert.Error(t, r.Validate(context.Background()))

		r.DiscountValue = types.MustMoney("100")
		assert.NoError(t, r.Validate(context.Background()))
	})

	t.Run("fixed discount cannot be negative", func(t *testing.T) {
		ch := ChannelCounter
		r := NewPriceRule("RGL-005", "Rebaja", listID, RuleChannelBased)
		r.Channel = &ch
		r.DiscountKind = DiscountFixedAmount
		r.DiscountValue = types.MustMoney("-1")
		assert.Error(t, r.Validate(context.Background()))
	})
}

func TestProductCombination_Validate(t *testing.T) {
	listID := id.New()
	groupID := id.New()

	valid := func() *ProductCombination {
		c := NewProductCombination("CMB-001", "Combo", listID)
		c.GroupID = &groupID
		c.ComboQtyMin = 3
		c.DiscountKind = DiscountPercentage
		c.DiscountValue = types.MustMoney("10")
		return c
	}

	require.NoError(t, valid().Validate(context.Background()))

	t.Run("requires a scope", func(t *testing.T) {
		c := valid()
		c.GroupID = nil
		assert.Error(t, c.Validate(context.Background()))
	})

	t.Run("rejects inverted quantity window", func(t *testing.T) {
		c := valid()
		c.ComboQtyMax = intPtr(2)
		assert.Error(t, c.Validate(context.Background()))
	})
}

func TestSupplierDiscount_Validate(t *testing.T) {
	d := &SupplierDiscount{
		ID:           id.New(),
		ItemPriceID:  id.New(),
		Percentage:   types.MustMoney("60"),
		Amount:       types.MustMoney("120"),
		AuthorizedBy: "user-1",
		AuthorizedAt: time.Now(),
	}
	require.NoError(t, d.Validate(context.Background()))

	d.Percentage = types.MustMoney("71")
	assert.Error(t, d.Validate(context.Background()))

	d.Percentage = types.MustMoney("60")
	d.AuthorizedBy = ""
	assert.Error(t, d.Validate(context.Background()))
}

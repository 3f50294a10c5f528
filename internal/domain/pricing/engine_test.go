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
	"tarifario/internal/domain/catalogs/article"
)

// --- Fakes ---
// Repository fakes return their rows in the order the real repositories
// guarantee: lists most recently started first, rules by (priority, kind).

type fakeListRepo struct {
	PriceListRepository
	byBranch  map[id.ID][]*PriceList
	byCompany map[id.ID][]*PriceList
}

func (f *fakeListRepo) FindActiveByBranch(_ context.Context, branchID id.ID, _ time.Time) ([]*PriceList, error) {
	return f.byBranch[branchID], nil
}

func (f *fakeListRepo) FindActiveByCompany(_ context.Context, companyID id.ID, _ time.Time) ([]*PriceList, error) {
	return f.byCompany[companyID], nil
}

type priceKey struct {
	list    id.ID
	article id.ID
}

type fakeItemPriceRepo struct {
	ItemPriceRepository
	rows map[priceKey]*ItemPrice
}

func (f *fakeItemPriceRepo) GetByListAndArticle(_ context.Context, priceListID, articleID id.ID) (*ItemPrice, error) {
	if p, ok := f.rows[priceKey{priceListID, articleID}]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("item_price", articleID.String())
}

type fakeRuleRepo struct {
	PriceRuleRepository
	rules []*PriceRule
}

func (f *fakeRuleRepo) ListActiveByList(_ context.Context, _ id.ID) ([]*PriceRule, error) {
	return f.rules, nil
}

type fakeComboRepo struct {
	CombinationRepository
	combos []*ProductCombination
}

func (f *fakeComboRepo) ListActiveByList(_ context.Context, _ id.ID) ([]*ProductCombination, error) {
	return f.combos, nil
}

type fakeArticleRepo struct {
	articles map[id.ID]*article.Article
}

func (f *fakeArticleRepo) GetByID(_ context.Context, articleID id.ID) (*article.Article, error) {
	if a, ok := f.articles[articleID]; ok {
		return a, nil
	}
	return nil, apperror.NewNotFound("article", articleID.String())
}

// --- Helpers ---

func money(s string) types.Money {
	return types.MustMoney(s)
}

func moneyPtr(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func intPtr(v int) *int { return &v }

func activeList(name string, companyID id.ID, branchID *id.ID, validFrom time.Time) *PriceList {
	l := NewPriceList("LST-"+name, name, ListNormal, validFrom)
	l.CompanyID = &companyID
	l.BranchID = branchID
	return l
}

type engineFixture struct {
	engine    *Engine
	companyID id.ID
	branchID  id.ID
	articleID id.ID
	groupID   id.ID
	list      *PriceList
	lists     *fakeListRepo
	prices    *fakeItemPriceRepo
	rules     *fakeRuleRepo
	combos    *fakeComboRepo
	articles  *fakeArticleRepo
}

// newEngineFixture builds an engine over one company-wide list with a
// single article priced at base 100, last cost 60.
func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	companyID := id.New()
	branchID := id.New()
	groupID := id.New()

	list := activeList("General", companyID, nil, time.Now().AddDate(0, -1, 0))

	art := article.NewArticle("ART-001", "Martillo")
	art.GroupID = &groupID

	itemPrice := NewItemPrice(list.ID, art.ID, money("100"))
	itemPrice.LastCost = money("60")

	f := &engineFixture{
		companyID: companyID,
		branchID:  branchID,
		articleID: art.ID,
		groupID:   groupID,
		list:      list,
		lists: &fakeListRepo{
			byBranch:  map[id.ID][]*PriceList{},
			byCompany: map[id.ID][]*PriceList{companyID: {list}},
		},
		prices: &fakeItemPriceRepo{
			rows: map[priceKey]*ItemPrice{{list.ID, art.ID}: itemPrice},
		},
		rules:    &fakeRuleRepo{},
		combos:   &fakeComboRepo{},
		articles: &fakeArticleRepo{articles: map[id.ID]*article.Article{art.ID: art}},
	}
	f.engine = NewEngine(f.lists, f.prices, f.rules, f.combos, f.articles)
	return f
}

func (f *engineFixture) request() CalcRequest {
	return CalcRequest{
		CompanyID: f.companyID,
		ArticleID: f.articleID,
		Quantity:  1,
	}
}

func channelRule(listID id.ID, name string, priority int, channel SalesChannel, pct string) *PriceRule {
	r := NewPriceRule("RGL-"+name, name, listID, RuleChannelBased)
	r.Priority = priority
	r.Channel = &channel
	r.DiscountKind = DiscountPercentage
	r.DiscountValue = money(pct)
	return r
}

// --- List resolution ---

func TestResolveActiveList_BranchWinsOverCompany(t *testing.T) {
	f := newEngineFixture(t)

	branchList := activeList("Sucursal", f.companyID, &f.branchID, time.Now().AddDate(0, 0, -5))
	f.lists.byBranch[f.branchID] = []*PriceList{branchList}

	got, err := f.engine.ResolveActiveList(context.Background(), f.companyID, &f.branchID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, branchList.ID, got.ID)
}

func TestResolveActiveList_FallsBackToCompanyWide(t *testing.T) {
	f := newEngineFixture(t)

	// The branch list's vigency ended last week; the engine must not
	// use it even though the repository returned it.
	expired := activeList("Vencida", f.companyID, &f.branchID, time.Now().AddDate(0, -2, 0))
	endedAt := time.Now().AddDate(0, 0, -7)
	expired.ValidTo = &endedAt
	f.lists.byBranch[f.branchID] = []*PriceList{expired}

	got, err := f.engine.ResolveActiveList(context.Background(), f.companyID, &f.branchID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.list.ID, got.ID)
}

func TestResolveActiveList_MostRecentlyStartedWins(t *testing.T) {
	f := newEngineFixture(t)

	older := activeList("Enero", f.companyID, nil, time.Now().AddDate(0, -3, 0))
	newer := activeList("Marzo", f.companyID, nil, time.Now().AddDate(0, 0, -3))
	f.lists.byCompany[f.companyID] = []*PriceList{newer, older}

	got, err := f.engine.ResolveActiveList(context.Background(), f.companyID, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newer.ID, got.ID)
}

func TestResolveActiveList_NoneInVigency(t *testing.T) {
	f := newEngineFixture(t)
	f.lists.byCompany = map[id.ID][]*PriceList{}

	got, err := f.engine.ResolveActiveList(context.Background(), f.companyID, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, got)
}

// --- Calculation error paths ---

func TestCalculatePrice_NoActiveList(t *testing.T) {
	f := newEngineFixture(t)
	f.lists.byCompany = map[id.ID][]*PriceList{}

	result, err := f.engine.CalculatePrice(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, "no se encontró una lista de precios vigente", result.Error)
	assert.True(t, result.BasePrice.IsZero())
	assert.True(t, result.FinalPrice.IsZero())
	assert.True(t, result.LastCost.IsZero())
	assert.Empty(t, result.AppliedRules)
	assert.Nil(t, result.CostValidation)
	assert.Empty(t, result.PriceListID)
}

func TestCalculatePrice_NoBasePrice(t *testing.T) {
	f := newEngineFixture(t)
	f.prices.rows = map[priceKey]*ItemPrice{}

	result, err := f.engine.CalculatePrice(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, "No se encontró precio base para el artículo en esta lista", result.Error)
	assert.True(t, result.FinalPrice.IsZero())
	assert.Nil(t, result.CostValidation)
}

func TestCalculatePrice_ArticleMissingFromCatalog(t *testing.T) {
	f := newEngineFixture(t)
	f.articles.articles = map[id.ID]*article.Article{}

	result, err := f.engine.CalculatePrice(context.Background(), f.request())
	require.NoError(t, err)

	// The base price is still reported; no rules can be matched without
	// the article's group and line.
	assert.Equal(t, "Artículo no encontrado", result.Error)
	assert.True(t, result.BasePrice.Equal(money("100")), "base price: %s", result.BasePrice)
	assert.True(t, result.FinalPrice.Equal(money("100")), "final price: %s", result.FinalPrice)
	assert.Empty(t, result.AppliedRules)
	assert.Nil(t, result.CostValidation)
}

// --- Rule application ---

func TestCalculatePrice_RulesFoldCumulatively(t *testing.T) {
	f := newEngineFixture(t)

	scale := NewPriceRule("RGL-ESC", "Escala 10+", f.list.ID, RuleUnitScale)
	scale.Priority = 20
	scale.QtyMin = intPtr(10)
	scale.DiscountKind = DiscountPercentage
	scale.DiscountValue = money("5")

	f.rules.rules = []*PriceRule{
		channelRule(f.list.ID, "Mayorista", 10, ChannelWholesale, "10"),
		scale,
	}

	req := f.request()
	channel := ChannelWholesale
	req.Channel = &channel
	req.Quantity = 10

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, result.Error)

	// 100 -> 90 (channel 10%) -> 85.5 (scale 5% over the running price)
	assert.True(t, result.FinalPrice.Equal(money("85.5")), "final price: %s", result.FinalPrice)

	require.Len(t, result.AppliedRules, 2)
	assert.Equal(t, "Mayorista", result.AppliedRules[0].Name)
	assert.Equal(t, "Canal de Venta", result.AppliedRules[0].Kind)
	assert.True(t, result.AppliedRules[0].PriceBefore.Equal(money("100")))
	assert.True(t, result.AppliedRules[0].PriceAfter.Equal(money("90")))
	assert.True(t, result.AppliedRules[0].Discount.Equal(money("10")))

	assert.Equal(t, "Escala de Unidades", result.AppliedRules[1].Kind)
	assert.True(t, result.AppliedRules[1].PriceBefore.Equal(money("90")))
	assert.True(t, result.AppliedRules[1].PriceAfter.Equal(money("85.5")))
}

func TestCalculatePrice_NonMatchingRuleLeavesNoLogEntry(t *testing.T) {
	f := newEngineFixture(t)

	f.rules.rules = []*PriceRule{
		channelRule(f.list.ID, "Online", 10, ChannelOnline, "15"),
	}

	req := f.request()
	channel := ChannelCounter
	req.Channel = &channel

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.FinalPrice.Equal(money("100")))
	assert.Empty(t, result.AppliedRules)
}

func TestCalculatePrice_AmountScaleSeesRunningPrice(t *testing.T) {
	f := newEngineFixture(t)

	scale := NewPriceRule("RGL-MON", "Escala de Monto", f.list.ID, RuleAmountScale)
	scale.Priority = 20
	scale.AmountMin = moneyPtr("150")
	scale.DiscountKind = DiscountPercentage
	scale.DiscountValue = money("10")

	f.rules.rules = []*PriceRule{
		channelRule(f.list.ID, "Mayorista", 10, ChannelWholesale, "50"),
		scale,
	}

	// Against the base price the line amount would be 200 and the scale
	// would match. The predicate runs on the discounted price: 50 x 2 =
	// 100, below the 150 threshold.
	req := f.request()
	channel := ChannelWholesale
	req.Channel = &channel
	req.Quantity = 2

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.FinalPrice.Equal(money("50")), "final price: %s", result.FinalPrice)
	require.Len(t, result.AppliedRules, 1)
	assert.Equal(t, "Mayorista", result.AppliedRules[0].Name)
}

func TestCalculatePrice_AmountScaleMatchesWithoutPriorDiscount(t *testing.T) {
	f := newEngineFixture(t)

	scale := NewPriceRule("RGL-MON", "Escala de Monto", f.list.ID, RuleAmountScale)
	scale.Priority = 20
	scale.AmountMin = moneyPtr("150")
	scale.DiscountKind = DiscountPercentage
	scale.DiscountValue = money("10")
	f.rules.rules = []*PriceRule{scale}

	req := f.request()
	req.Quantity = 2

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.FinalPrice.Equal(money("90")), "final price: %s", result.FinalPrice)
	require.Len(t, result.AppliedRules, 1)
}

func TestCalculatePrice_OrderTotalScale(t *testing.T) {
	f := newEngineFixture(t)

	scale := NewPriceRule("RGL-PED", "Pedido Grande", f.list.ID, RuleOrderTotalScale)
	scale.Priority = 10
	scale.OrderTotalMin = moneyPtr("1000")
	scale.DiscountKind = DiscountPercentage
	scale.DiscountValue = money("3")
	f.rules.rules = []*PriceRule{scale}

	req := f.request()
	req.OrderTotal = money("1500")

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.FinalPrice.Equal(money("97")), "final price: %s", result.FinalPrice)
}

func TestCalculatePrice_RuleScopeFiltersByGroup(t *testing.T) {
	f := newEngineFixture(t)

	otherGroup := id.New()
	scoped := channelRule(f.list.ID, "Solo Otro Grupo", 10, ChannelCounter, "20")
	scoped.GroupID = &otherGroup
	f.rules.rules = []*PriceRule{scoped}

	req := f.request()
	channel := ChannelCounter
	req.Channel = &channel

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.FinalPrice.Equal(money("100")))
	assert.Empty(t, result.AppliedRules)
}

// --- Combinations ---

func TestCalculatePrice_CombinationAppliesAfterRules(t *testing.T) {
	f := newEngineFixture(t)

	f.rules.rules = []*PriceRule{
		channelRule(f.list.ID, "Mayorista", 10, ChannelWholesale, "10"),
	}

	combo := NewProductCombination("CMB-001", "Combo x3", f.list.ID)
	combo.GroupID = &f.groupID
	combo.ComboQtyMin = 3
	combo.DiscountKind = DiscountPercentage
	combo.DiscountValue = money("10")
	f.combos.combos = []*ProductCombination{combo}

	req := f.request()
	channel := ChannelWholesale
	req.Channel = &channel
	req.Quantity = 3

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	// 100 -> 90 (rule) -> 81 (combination over the rule output)
	assert.True(t, result.FinalPrice.Equal(money("81")), "final price: %s", result.FinalPrice)
	require.Len(t, result.AppliedRules, 2)
	assert.Equal(t, "Combinación de Productos", result.AppliedRules[1].Kind)
	assert.Equal(t, "Combo x3", result.AppliedRules[1].Name)
}

func TestCalculatePrice_CombinationBelowMinQuantitySkipped(t *testing.T) {
	f := newEngineFixture(t)

	combo := NewProductCombination("CMB-001", "Combo x3", f.list.ID)
	combo.GroupID = &f.groupID
	combo.ComboQtyMin = 3
	combo.DiscountKind = DiscountPercentage
	combo.DiscountValue = money("10")
	f.combos.combos = []*ProductCombination{combo}

	req := f.request()
	req.Quantity = 2

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.FinalPrice.Equal(money("100")))
	assert.Empty(t, result.AppliedRules)
}

// --- Discounts and floors ---

func TestCalculatePrice_FixedDiscountFloorsAtZero(t *testing.T) {
	f := newEngineFixture(t)

	itemPrice := NewItemPrice(f.list.ID, f.articleID, money("5"))
	f.prices.rows = map[priceKey]*ItemPrice{{f.list.ID, f.articleID}: itemPrice}

	fixed := channelRule(f.list.ID, "Rebaja Fija", 10, ChannelCounter, "0")
	fixed.DiscountKind = DiscountFixedAmount
	fixed.DiscountValue = money("10")
	f.rules.rules = []*PriceRule{fixed}

	req := f.request()
	channel := ChannelCounter
	req.Channel = &channel

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.FinalPrice.IsZero(), "final price: %s", result.FinalPrice)
}

// --- Cost validation ---

func TestValidateAgainstCost(t *testing.T) {
	engine := &Engine{}

	t.Run("no cost reference", func(t *testing.T) {
		// A zero last cost never blocks; the plain valid message is the
		// legacy payload.
		ip := &ItemPrice{LastCost: money("0")}
		v := engine.ValidateAgainstCost(money("80"), ip)
		assert.True(t, v.Valid)
		assert.Equal(t, "Precio válido", v.Message)
		assert.True(t, v.Difference.Equal(money("80")))
	})

	t.Run("above cost", func(t *testing.T) {
		ip := &ItemPrice{LastCost: money("60")}
		v := engine.ValidateAgainstCost(money("80"), ip)
		assert.True(t, v.Valid)
		assert.Equal(t, "Precio válido", v.Message)
		assert.True(t, v.Difference.Equal(money("20")))
	})

	t.Run("below cost unauthorized", func(t *testing.T) {
		ip := &ItemPrice{LastCost: money("90")}
		final := money("80")
		v := engine.ValidateAgainstCost(final, ip)
		assert.False(t, v.Valid)
		want := "Precio final (" + final.String() + ") es inferior al costo (" + ip.LastCost.String() + "). No autorizado."
		assert.Equal(t, want, v.Message)
		assert.True(t, v.Difference.Equal(money("10")))
	})

	t.Run("below cost authorized", func(t *testing.T) {
		ip := &ItemPrice{LastCost: money("90"), BelowCostAuthorized: true}
		v := engine.ValidateAgainstCost(money("80"), ip)
		assert.True(t, v.Valid)
		want := "Precio bajo costo autorizado. Diferencia: " + v.Difference.String()
		assert.Equal(t, want, v.Message)
		assert.True(t, v.Difference.Equal(money("10")))
	})
}

func TestCalculatePrice_ReportsCostValidation(t *testing.T) {
	f := newEngineFixture(t)

	// 60% off leaves the price at 40, under the cost of 60.
	f.rules.rules = []*PriceRule{
		channelRule(f.list.ID, "Liquidación", 10, ChannelCounter, "60"),
	}

	req := f.request()
	channel := ChannelCounter
	req.Channel = &channel

	result, err := f.engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result.CostValidation)
	assert.False(t, result.CostValidation.Valid)
	assert.False(t, result.BelowCostAuthorized)
	assert.Equal(t, f.list.ID.String(), result.PriceListID)
	assert.Equal(t, f.list.Name, result.PriceListName)
}

package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
	"tarifario/internal/core/numerator"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/catalogs/article"
	"tarifario/internal/domain/catalogs/customer"
	"tarifario/internal/domain/pricing"
)

// --- Fakes ---

type fakeOrderRepo struct {
	orders       map[id.ID]*CustomerOrder
	created      *CustomerOrder
	updatedState *OrderState
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[id.ID]*CustomerOrder{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *CustomerOrder) error {
	f.created = o
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, orderID id.ID) (*CustomerOrder, error) {
	if o, ok := f.orders[orderID]; ok {
		return o, nil
	}
	return nil, apperror.NewNotFound("customer_order", orderID.String())
}

func (f *fakeOrderRepo) ListByCompany(_ context.Context, _ id.ID, _, _ int) ([]*CustomerOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, _ id.ID, _, _ int) ([]*CustomerOrder, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateState(_ context.Context, orderID id.ID, state OrderState, _ int) error {
	f.updatedState = &state
	if o, ok := f.orders[orderID]; ok {
		o.State = state
	}
	return nil
}

func (f *fakeOrderRepo) SetDeletionMark(_ context.Context, orderID id.ID, mark bool) error {
	if o, ok := f.orders[orderID]; ok {
		o.DeletionMark = mark
	}
	return nil
}

type fakeCustomerReader struct {
	customers map[id.ID]*customer.Customer
}

func (f *fakeCustomerReader) GetByID(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	if c, ok := f.customers[customerID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("customer", customerID.String())
}

type fakeNumerator struct {
	number string
}

func (f *fakeNumerator) GetNextNumber(_ context.Context, _ numerator.Config, _ *numerator.Options, _ time.Time) (string, error) {
	return f.number, nil
}

func (f *fakeNumerator) SetNextNumber(_ context.Context, _ numerator.Config, _ time.Time, _ int64) error {
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Pricing repository fakes. Unused interface methods panic through the
// embedded nil interface, which is the failure we want in a test.

type stubListRepo struct {
	pricing.PriceListRepository
	lists []*pricing.PriceList
}

func (f *stubListRepo) FindActiveByBranch(_ context.Context, _ id.ID, _ time.Time) ([]*pricing.PriceList, error) {
	return nil, nil
}

func (f *stubListRepo) FindActiveByCompany(_ context.Context, _ id.ID, _ time.Time) ([]*pricing.PriceList, error) {
	return f.lists, nil
}

type stubItemPriceRepo struct {
	pricing.ItemPriceRepository
	prices map[id.ID]*pricing.ItemPrice
}

func (f *stubItemPriceRepo) GetByListAndArticle(_ context.Context, _, articleID id.ID) (*pricing.ItemPrice, error) {
	if p, ok := f.prices[articleID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("item_price", articleID.String())
}

type stubRuleRepo struct {
	pricing.PriceRuleRepository
	rules []*pricing.PriceRule
}

func (f *stubRuleRepo) ListActiveByList(_ context.Context, _ id.ID) ([]*pricing.PriceRule, error) {
	return f.rules, nil
}

type stubComboRepo struct {
	pricing.CombinationRepository
}

func (f *stubComboRepo) ListActiveByList(_ context.Context, _ id.ID) ([]*pricing.ProductCombination, error) {
	return nil, nil
}

type stubArticleReader struct {
	articles map[id.ID]*article.Article
}

func (f *stubArticleReader) GetByID(_ context.Context, articleID id.ID) (*article.Article, error) {
	if a, ok := f.articles[articleID]; ok {
		return a, nil
	}
	return nil, apperror.NewNotFound("article", articleID.String())
}

// --- Fixture ---

type serviceFixture struct {
	service   *Service
	repo      *fakeOrderRepo
	customers *fakeCustomerReader
	rules     *stubRuleRepo
	prices    *stubItemPriceRepo
	companyID id.ID
	custID    id.ID
	articleID id.ID
	listID    id.ID
}

// newServiceFixture wires the service over one company-wide list with a
// single article priced at 100.
func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	companyID := id.New()

	cust := customer.NewCustomer("CLI-001", "Cliente Uno")

	list := pricing.NewPriceList("LST-001", "General", pricing.ListNormal, time.Now().AddDate(0, -1, 0))
	list.CompanyID = &companyID

	art := article.NewArticle("ART-001", "Martillo")
	itemPrice := pricing.NewItemPrice(list.ID, art.ID, types.MustMoney("100"))

	repo := newFakeOrderRepo()
	customers := &fakeCustomerReader{customers: map[id.ID]*customer.Customer{cust.ID: cust}}
	rules := &stubRuleRepo{}
	prices := &stubItemPriceRepo{prices: map[id.ID]*pricing.ItemPrice{art.ID: itemPrice}}

	engine := pricing.NewEngine(
		&stubListRepo{lists: []*pricing.PriceList{list}},
		prices,
		rules,
		&stubComboRepo{},
		&stubArticleReader{articles: map[id.ID]*article.Article{art.ID: art}},
	)

	return &serviceFixture{
		service:   NewService(repo, customers, engine, fakeTxManager{}, &fakeNumerator{number: "ORD-2026-00001"}),
		repo:      repo,
		customers: customers,
		rules:     rules,
		prices:    prices,
		companyID: companyID,
		custID:    cust.ID,
		articleID: art.ID,
		listID:    list.ID,
	}
}

func (f *serviceFixture) input(lines ...LineInput) CreateInput {
	return CreateInput{
		CompanyID:  f.companyID,
		CustomerID: f.custID,
		Channel:    pricing.ChannelCounter,
		Lines:      lines,
	}
}

// --- Tests ---

func TestCreate_PricesLinesAndPersists(t *testing.T) {
	f := newServiceFixture(t)

	o, err := f.service.Create(context.Background(), f.input(
		LineInput{ArticleID: f.articleID, Quantity: 2},
	))
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, "ORD-2026-00001", o.Number)
	assert.Equal(t, StatePending, o.State)
	assert.True(t, o.Total.Equal(types.MustMoney("200")), "total: %s", o.Total)

	require.Len(t, o.Items, 1)
	item := o.Items[0]
	assert.Equal(t, 1, item.LineNo)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(types.MustMoney("100")))
	assert.True(t, item.BasePrice.Equal(types.MustMoney("100")))
	assert.True(t, item.Subtotal.Equal(types.MustMoney("200")))

	require.NotNil(t, f.repo.created)
	assert.Equal(t, o.ID, f.repo.created.ID)
}

func TestCreate_RunningTotalFeedsOrderScaleRules(t *testing.T) {
	f := newServiceFixture(t)

	min := types.MustMoney("100")
	rule := pricing.NewPriceRule("RGL-001", "Pedido Grande", f.listID, pricing.RuleOrderTotalScale)
	rule.OrderTotalMin = &min
	rule.DiscountKind = pricing.DiscountPercentage
	rule.DiscountValue = types.MustMoney("10")
	f.rules.rules = []*pricing.PriceRule{rule}

	// The first line is priced against an empty order, so the scale does
	// not match yet. The second line sees the 100 already accumulated.
	o, err := f.service.Create(context.Background(), f.input(
		LineInput{ArticleID: f.articleID, Quantity: 1},
		LineInput{ArticleID: f.articleID, Quantity: 1},
	))
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].UnitPrice.Equal(types.MustMoney("100")), "first line: %s", o.Items[0].UnitPrice)
	assert.True(t, o.Items[1].UnitPrice.Equal(types.MustMoney("90")), "second line: %s", o.Items[1].UnitPrice)
	assert.True(t, o.Total.Equal(types.MustMoney("190")), "total: %s", o.Total)
}

func TestCreate_UnpriceableLineRejectsOrder(t *testing.T) {
	f := newServiceFixture(t)
	f.prices.prices = map[id.ID]*pricing.ItemPrice{}

	_, err := f.service.Create(context.Background(), f.input(
		LineInput{ArticleID: f.articleID, Quantity: 1},
	))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "ORDER_LINE_UNPRICEABLE", appErr.Code)
	assert.Equal(t, pricing.MsgNoBasePrice, appErr.Message)
	assert.Nil(t, f.repo.created)
}

func TestCreate_InactiveCustomerRejected(t *testing.T) {
	f := newServiceFixture(t)
	f.customers.customers[f.custID].State = entity.StateInactive

	_, err := f.service.Create(context.Background(), f.input(
		LineInput{ArticleID: f.articleID, Quantity: 1},
	))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "CUSTOMER_INACTIVE", appErr.Code)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	f := newServiceFixture(t)

	in := f.input(LineInput{ArticleID: f.articleID, Quantity: 1})
	in.CustomerID = id.New()

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_RequiresLines(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Create(context.Background(), f.input())
	require.Error(t, err)
	assert.Nil(t, f.repo.created)
}

func TestChangeState_HappyPath(t *testing.T) {
	f := newServiceFixture(t)

	o, err := f.service.Create(context.Background(), f.input(
		LineInput{ArticleID: f.articleID, Quantity: 1},
	))
	require.NoError(t, err)

	updated, err := f.service.ChangeState(context.Background(), o.ID, StateProcessing)
	require.NoError(t, err)
	assert.Equal(t, StateProcessing, updated.State)
	require.NotNil(t, f.repo.updatedState)
	assert.Equal(t, StateProcessing, *f.repo.updatedState)
}

func TestChangeState_RejectsIllegalMove(t *testing.T) {
	f := newServiceFixture(t)

	o, err := f.service.Create(context.Background(), f.input(
		LineInput{ArticleID: f.articleID, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = f.service.ChangeState(context.Background(), o.ID, StateCompleted)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "ORDER_STATE_TRANSITION", appErr.Code)
	assert.Nil(t, f.repo.updatedState)
}

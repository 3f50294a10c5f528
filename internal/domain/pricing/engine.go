package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tarifario/internal/core/apperror"
	"tarifario/internal/core/id"
	"tarifario/internal/core/types"
	"tarifario/internal/domain/catalogs/article"
	"tarifario/pkg/logger"
)

// Calculation error messages. These are part of the wire contract and
// must match the legacy POS responses byte for byte.
const (
	MsgNoActiveList    = "no se encontró una lista de precios vigente"
	MsgNoBasePrice     = "No se encontró precio base para el artículo en esta lista"
	MsgArticleNotFound = "Artículo no encontrado"
	comboLogLabel      = "Combinación de Productos"
)

// CalcRequest is the input contract of the price calculation.
type CalcRequest struct {
	CompanyID  id.ID
	BranchID   *id.ID
	ArticleID  id.ID
	Channel    *SalesChannel
	Quantity   int
	OrderTotal types.Money
	Date       *time.Time
}

// AppliedRule is one entry of the ordered application log.
type AppliedRule struct {
	RuleID      string      `json:"regla_id"`
	Name        string      `json:"nombre"`
	Kind        string      `json:"tipo"`
	PriceBefore types.Money `json:"precio_anterior"`
	PriceAfter  types.Money `json:"precio_nuevo"`
	Discount    types.Money `json:"descuento_aplicado"`
}

// CostValidation is the verdict of the final price against last cost.
type CostValidation struct {
	Valid      bool        `json:"valido"`
	Message    string      `json:"mensaje"`
	Difference types.Money `json:"diferencia"`
}

// CalcResult is the output contract of the price calculation.
// Error paths return a zeroed result with Error set; they never fail
// the call itself.
type CalcResult struct {
	BasePrice           types.Money
	FinalPrice          types.Money
	LastCost            types.Money
	AppliedRules        []AppliedRule
	BelowCostAuthorized bool
	CostValidation      *CostValidation
	PriceListID         string
	PriceListName       string
	Error               string
}

// Engine computes final sale prices. All operations except the
// registrar are pure reads; the engine is safe for concurrent use.
type Engine struct {
	lists    PriceListRepository
	prices   ItemPriceRepository
	rules    PriceRuleRepository
	combos   CombinationRepository
	articles ArticleReader
}

// NewEngine creates a pricing engine.
func NewEngine(
	lists PriceListRepository,
	prices ItemPriceRepository,
	rules PriceRuleRepository,
	combos CombinationRepository,
	articles ArticleReader,
) *Engine {
	return &Engine{
		lists:    lists,
		prices:   prices,
		rules:    rules,
		combos:   combos,
		articles: articles,
	}
}

// ResolveActiveList finds the effective price list for a scope at a date.
// Branch-scoped lists win over company-wide ones; within a tier the most
// recently started list wins. Returns (nil, nil) when no list is in
// vigency; that is an expected outcome, not an error.
func (e *Engine) ResolveActiveList(ctx context.Context, companyID id.ID, branchID *id.ID, date time.Time) (*PriceList, error) {
	if branchID != nil {
		lists, err := e.lists.FindActiveByBranch(ctx, *branchID, date)
		if err != nil {
			return nil, fmt.Errorf("find branch lists: %w", err)
		}
		for _, l := range lists {
			if l.InVigency(date) {
				return l, nil
			}
		}
	}

	lists, err := e.lists.FindActiveByCompany(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("find company lists: %w", err)
	}
	for _, l := range lists {
		if l.InVigency(date) {
			return l, nil
		}
	}

	return nil, nil
}

// LookupBasePrice retrieves the base price record for (list, article).
// A missing row is a distinct NotFound outcome; zero is a valid price.
func (e *Engine) LookupBasePrice(ctx context.Context, priceListID, articleID id.ID) (*ItemPrice, error) {
	return e.prices.GetByListAndArticle(ctx, priceListID, articleID)
}

// CalculatePrice is the calculation entry point: resolve list, look up
// base price, fold rules, apply combinations, validate against cost.
func (e *Engine) CalculatePrice(ctx context.Context, req CalcRequest) (*CalcResult, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	list, err := e.ResolveActiveList(ctx, req.CompanyID, req.BranchID, date)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return zeroResult(MsgNoActiveList), nil
	}

	itemPrice, err := e.LookupBasePrice(ctx, list.ID, req.ArticleID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return zeroResult(MsgNoBasePrice), nil
		}
		return nil, err
	}

	art, err := e.articles.GetByID(ctx, req.ArticleID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return &CalcResult{
				BasePrice:           itemPrice.BasePrice,
				FinalPrice:          itemPrice.BasePrice,
				LastCost:            itemPrice.LastCost,
				AppliedRules:        []AppliedRule{},
				BelowCostAuthorized: itemPrice.BelowCostAuthorized,
				Error:               MsgArticleNotFound,
			}, nil
		}
		return nil, err
	}

	price, log, err := e.applyRules(ctx, list.ID, art, itemPrice.BasePrice, req)
	if err != nil {
		return nil, err
	}

	price, log, err = e.applyCombinations(ctx, list.ID, art, price, req.Quantity, log)
	if err != nil {
		return nil, err
	}

	price = types.MaxZero(price)
	validation := e.ValidateAgainstCost(price, itemPrice)

	logger.Debug(ctx, "price calculated",
		"article_id", req.ArticleID,
		"price_list_id", list.ID,
		"base_price", itemPrice.BasePrice,
		"final_price", price,
		"rules_applied", len(log),
	)

	return &CalcResult{
		BasePrice:           itemPrice.BasePrice,
		FinalPrice:          price,
		LastCost:            itemPrice.LastCost,
		AppliedRules:        log,
		BelowCostAuthorized: itemPrice.BelowCostAuthorized,
		CostValidation:      &validation,
		PriceListID:         list.ID.String(),
		PriceListName:       list.Name,
	}, nil
}

// applyRules folds the ordered active rules over the running price.
// Each rule sees the output of the previous one; a log entry is appended
// only when the price actually changed.
func (e *Engine) applyRules(ctx context.Context, priceListID id.ID, art *article.Article, startPrice types.Money, req CalcRequest) (types.Money, []AppliedRule, error) {
	rules, err := e.rules.ListActiveByList(ctx, priceListID)
	if err != nil {
		return startPrice, nil, fmt.Errorf("list rules: %w", err)
	}

	price := startPrice
	log := []AppliedRule{}

	for _, rule := range rules {
		next := e.applyRule(rule, art, price, req)
		if !next.Equal(price) {
			log = append(log, AppliedRule{
				RuleID:      rule.ID.String(),
				Name:        rule.Name,
				Kind:        rule.Kind.DisplayName(),
				PriceBefore: price,
				PriceAfter:  next,
				Discount:    price.Sub(next),
			})
		}
		price = next
	}

	return price, log, nil
}

// applyRule returns the price after one rule; unchanged when the rule
// does not match.
func (e *Engine) applyRule(rule *PriceRule, art *article.Article, price types.Money, req CalcRequest) types.Money {
	if !matchesScope(rule.GroupID, rule.LineID, rule.ArticleID, art) {
		return price
	}

	switch rule.Kind {
	case RuleChannelBased:
		if req.Channel != nil && rule.Channel != nil && *req.Channel == *rule.Channel {
			return applyDiscount(price, rule.DiscountKind, rule.DiscountValue)
		}

	case RuleUnitScale:
		if inIntRange(req.Quantity, rule.QtyMin, rule.QtyMax) {
			return applyDiscount(price, rule.DiscountKind, rule.DiscountValue)
		}

	case RuleAmountScale:
		// The predicate uses the running (possibly already discounted)
		// price, not the original base. Deliberate: scales escalate.
		itemAmount := price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		if inMoneyRange(itemAmount, rule.AmountMin, rule.AmountMax) {
			return applyDiscount(price, rule.DiscountKind, rule.DiscountValue)
		}

	case RuleOrderTotalScale:
		if inMoneyRange(req.OrderTotal, rule.OrderTotalMin, rule.OrderTotalMax) {
			return applyDiscount(price, rule.DiscountKind, rule.DiscountValue)
		}
	}

	// RuleProductCombination rows are never folded here; combinations
	// are separate records applied after the rules.
	return price
}

// applyCombinations applies matching active combinations after the rule
// fold, appending to the same ordered log under the combination label.
func (e *Engine) applyCombinations(ctx context.Context, priceListID id.ID, art *article.Article, startPrice types.Money, quantity int, log []AppliedRule) (types.Money, []AppliedRule, error) {
	combos, err := e.combos.ListActiveByList(ctx, priceListID)
	if err != nil {
		return startPrice, log, fmt.Errorf("list combinations: %w", err)
	}

	price := startPrice
	for _, combo := range combos {
		if !matchesScope(combo.GroupID, combo.LineID, combo.ArticleID, art) {
			continue
		}
		if quantity < combo.ComboQtyMin {
			continue
		}
		if combo.ComboQtyMax != nil && quantity > *combo.ComboQtyMax {
			continue
		}

		next := applyDiscount(price, combo.DiscountKind, combo.DiscountValue)
		if !next.Equal(price) {
			log = append(log, AppliedRule{
				RuleID:      combo.ID.String(),
				Name:        combo.Name,
				Kind:        comboLogLabel,
				PriceBefore: price,
				PriceAfter:  next,
				Discount:    price.Sub(next),
			})
		}
		price = next
	}

	return price, log, nil
}

// ValidateAgainstCost checks the final price against the last known
// cost. It only reports; blocking the sale is the caller's decision.
func (e *Engine) ValidateAgainstCost(finalPrice types.Money, itemPrice *ItemPrice) CostValidation {
	lastCost := itemPrice.LastCost

	if finalPrice.LessThan(lastCost) {
		diff := lastCost.Sub(finalPrice)
		if itemPrice.BelowCostAuthorized {
			return CostValidation{
				Valid:      true,
				Message:    fmt.Sprintf("Precio bajo costo autorizado. Diferencia: %s", diff),
				Difference: diff,
			}
		}
		return CostValidation{
			Valid:      false,
			Message:    fmt.Sprintf("Precio final (%s) es inferior al costo (%s). No autorizado.", finalPrice, lastCost),
			Difference: diff,
		}
	}

	return CostValidation{
		Valid:      true,
		Message:    "Precio válido",
		Difference: finalPrice.Sub(lastCost),
	}
}

// matchesScope tests the group/line/article restriction of a rule or
// combination against the transaction's article. No restriction = all.
func matchesScope(groupID, lineID, articleID *id.ID, art *article.Article) bool {
	if articleID != nil && *articleID != art.ID {
		return false
	}
	if lineID != nil && (art.LineID == nil || *lineID != *art.LineID) {
		return false
	}
	if groupID != nil && (art.GroupID == nil || *groupID != *art.GroupID) {
		return false
	}
	return true
}

// applyDiscount applies one discount to a price. Fixed amounts floor
// at zero.
func applyDiscount(price types.Money, kind DiscountKind, value types.Money) types.Money {
	switch kind {
	case DiscountPercentage:
		return types.ApplyPercentDiscount(price, value)
	case DiscountFixedAmount:
		return types.MaxZero(price.Sub(value))
	default:
		return price
	}
}

func inIntRange(v int, min, max *int) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func inMoneyRange(v types.Money, min, max *types.Money) bool {
	if min != nil && v.LessThan(*min) {
		return false
	}
	if max != nil && v.GreaterThan(*max) {
		return false
	}
	return true
}

func zeroResult(errMsg string) *CalcResult {
	return &CalcResult{
		BasePrice:    decimal.Zero,
		FinalPrice:   decimal.Zero,
		LastCost:     decimal.Zero,
		AppliedRules: []AppliedRule{},
		Error:        errMsg,
	}
}

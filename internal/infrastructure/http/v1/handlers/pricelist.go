package handlers

import (
	"tarifario/internal/domain"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/http/v1/dto"
)

// PriceListHTTPHandler is the concrete catalog handler for price lists.
type PriceListHTTPHandler = CatalogHandler[
	*pricing.PriceList,
	dto.CreatePriceListRequest,
	dto.UpdatePriceListRequest,
]

// NewPriceListHandler wires the generic catalog handler for price lists.
func NewPriceListHandler(base *BaseHandler, service *pricing.ListService) *PriceListHTTPHandler {
	config := CatalogHandlerConfig[
		*pricing.PriceList,
		dto.CreatePriceListRequest,
		dto.UpdatePriceListRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "price_list",
		MapCreateDTO: func(req dto.CreatePriceListRequest) *pricing.PriceList {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePriceListRequest, existing *pricing.PriceList) *pricing.PriceList {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *pricing.PriceList) any {
			return dto.FromPriceList(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

// PriceRuleHTTPHandler is the concrete catalog handler for price rules.
type PriceRuleHTTPHandler = CatalogHandler[
	*pricing.PriceRule,
	dto.CreatePriceRuleRequest,
	dto.UpdatePriceRuleRequest,
]

// NewPriceRuleHandler wires the generic catalog handler for price rules.
func NewPriceRuleHandler(base *BaseHandler, service *domain.CatalogService[*pricing.PriceRule]) *PriceRuleHTTPHandler {
	config := CatalogHandlerConfig[
		*pricing.PriceRule,
		dto.CreatePriceRuleRequest,
		dto.UpdatePriceRuleRequest,
	]{
		Service:    service,
		EntityName: "price_rule",
		MapCreateDTO: func(req dto.CreatePriceRuleRequest) *pricing.PriceRule {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePriceRuleRequest, existing *pricing.PriceRule) *pricing.PriceRule {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *pricing.PriceRule) any {
			return dto.FromPriceRule(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

// CombinationHTTPHandler is the concrete catalog handler for combinations.
type CombinationHTTPHandler = CatalogHandler[
	*pricing.ProductCombination,
	dto.CreateCombinationRequest,
	dto.UpdateCombinationRequest,
]

// NewCombinationHandler wires the generic catalog handler for product combinations.
func NewCombinationHandler(base *BaseHandler, service *domain.CatalogService[*pricing.ProductCombination]) *CombinationHTTPHandler {
	config := CatalogHandlerConfig[
		*pricing.ProductCombination,
		dto.CreateCombinationRequest,
		dto.UpdateCombinationRequest,
	]{
		Service:    service,
		EntityName: "product_combination",
		MapCreateDTO: func(req dto.CreateCombinationRequest) *pricing.ProductCombination {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCombinationRequest, existing *pricing.ProductCombination) *pricing.ProductCombination {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *pricing.ProductCombination) any {
			return dto.FromCombination(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

package handlers

import (
	"tarifario/internal/domain/catalogs/company"
	"tarifario/internal/infrastructure/http/v1/dto"
)

// CompanyHTTPHandler is the concrete catalog handler for companies.
type CompanyHTTPHandler = CatalogHandler[
	*company.Company,
	dto.CreateCompanyRequest,
	dto.UpdateCompanyRequest,
]

// NewCompanyHandler wires the generic catalog handler for companies.
func NewCompanyHandler(base *BaseHandler, service *company.Service) *CompanyHTTPHandler {
	config := CatalogHandlerConfig[
		*company.Company,
		dto.CreateCompanyRequest,
		dto.UpdateCompanyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "company",
		MapCreateDTO: func(req dto.CreateCompanyRequest) *company.Company {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCompanyRequest, existing *company.Company) *company.Company {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *company.Company) any {
			return dto.FromCompany(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

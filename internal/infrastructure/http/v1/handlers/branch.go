package handlers

import (
	"tarifario/internal/domain/catalogs/branch"
	"tarifario/internal/infrastructure/http/v1/dto"
)

// BranchHTTPHandler is the concrete catalog handler for branches.
type BranchHTTPHandler = CatalogHandler[
	*branch.Branch,
	dto.CreateBranchRequest,
	dto.UpdateBranchRequest,
]

// NewBranchHandler wires the generic catalog handler for branches.
func NewBranchHandler(base *BaseHandler, service *branch.Service) *BranchHTTPHandler {
	config := CatalogHandlerConfig[
		*branch.Branch,
		dto.CreateBranchRequest,
		dto.UpdateBranchRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "branch",
		MapCreateDTO: func(req dto.CreateBranchRequest) *branch.Branch {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateBranchRequest, existing *branch.Branch) *branch.Branch {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *branch.Branch) any {
			return dto.FromBranch(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

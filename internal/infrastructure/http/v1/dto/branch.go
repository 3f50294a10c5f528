package dto

import (
	"tarifario/internal/core/id"
	"tarifario/internal/domain/catalogs/branch"
)

// CreateBranchRequest is the request body for creating a branch.
type CreateBranchRequest struct {
	Code      string  `json:"code"`
	Name      string  `json:"name" binding:"required"`
	CompanyID id.ID   `json:"companyId" binding:"required"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBranchRequest) ToEntity() *branch.Branch {
	item := branch.NewBranch(r.Code, r.Name, r.CompanyID)
	item.Address = r.Address
	item.Phone = r.Phone
	return item
}

// UpdateBranchRequest is the request body for updating a branch.
type UpdateBranchRequest struct {
	Code      string  `json:"code"`
	Name      string  `json:"name" binding:"required"`
	CompanyID id.ID   `json:"companyId" binding:"required"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Version   int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBranchRequest) ApplyTo(item *branch.Branch) {
	item.Code = r.Code
	item.Name = r.Name
	item.CompanyID = r.CompanyID
	item.Address = r.Address
	item.Phone = r.Phone
	item.Version = r.Version
}

// BranchResponse is the response body for a branch.
type BranchResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	CompanyID    string  `json:"companyId"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	State        int     `json:"state"`
	DeletionMark bool    `json:"deletionMark"`
	Version      int     `json:"version"`
}

// FromBranch creates response DTO from domain entity.
func FromBranch(item *branch.Branch) *BranchResponse {
	return &BranchResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		CompanyID:    item.CompanyID.String(),
		Address:      item.Address,
		Phone:        item.Phone,
		State:        int(item.State),
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

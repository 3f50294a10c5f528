package dto

import (
	"tarifario/internal/domain/catalogs/company"
)

// CreateCompanyRequest is the request body for creating a company.
type CreateCompanyRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	RUC     *string `json:"ruc"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCompanyRequest) ToEntity() *company.Company {
	item := company.NewCompany(r.Code, r.Name)
	item.RUC = r.RUC
	item.Address = r.Address
	item.Phone = r.Phone
	item.Email = r.Email
	return item
}

// UpdateCompanyRequest is the request body for updating a company.
type UpdateCompanyRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	RUC     *string `json:"ruc"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Version int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCompanyRequest) ApplyTo(item *company.Company) {
	item.Code = r.Code
	item.Name = r.Name
	item.RUC = r.RUC
	item.Address = r.Address
	item.Phone = r.Phone
	item.Email = r.Email
	item.Version = r.Version
}

// CompanyResponse is the response body for a company.
type CompanyResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	RUC          *string `json:"ruc,omitempty"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	State        int     `json:"state"`
	DeletionMark bool    `json:"deletionMark"`
	Version      int     `json:"version"`
}

// FromCompany creates response DTO from domain entity.
func FromCompany(item *company.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		RUC:          item.RUC,
		Address:      item.Address,
		Phone:        item.Phone,
		Email:        item.Email,
		State:        int(item.State),
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}

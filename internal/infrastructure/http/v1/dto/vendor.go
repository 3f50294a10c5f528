package dto

import (
	"tarifario/internal/domain/catalogs/vendor"
)

// CreateVendorRequest is the request body for creating a vendor.
type CreateVendorRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	DocumentNumber *string `json:"documentNumber"`
	ContactName    *string `json:"contactName"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVendorRequest) ToEntity() *vendor.Vendor {
	item := vendor.NewVendor(r.Code, r.Name)
	item.DocumentNumber = r.DocumentNumber
	item.ContactName = r.ContactName
	item.Address = r.Address
	item.Phone = r.Phone
	item.Email = r.Email
	return item
}

// UpdateVendorRequest is the request body for updating a vendor.
type UpdateVendorRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	DocumentNumber *string `json:"documentNumber"`
	ContactName    *string `json:"contactName"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Version        int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateVendorRequest) ApplyTo(item *vendor.Vendor) {
	item.Code = r.Code
	item.Name = r.Name
	item.DocumentNumber = r.DocumentNumber
	item.ContactName = r.ContactName
	item.Address = r.Address
	item.Phone = r.Phone
	item.Email = r.Email
	item.Version = r.Version
}

// VendorResponse is the response body for a vendor.
type VendorResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	ContactName    *string `json:"contactName,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	State          int     `json:"state"`
	DeletionMark   bool    `json:"deletionMark"`
	Version        int     `json:"version"`
}

// FromVendor creates response DTO from domain entity.
func FromVendor(item *vendor.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:             item.ID.String(),
		Code:           item.Code,
		Name:           item.Name,
		DocumentNumber: item.DocumentNumber,
		ContactName:    item.ContactName,
		Address:        item.Address,
		Phone:          item.Phone,
		Email:          item.Email,
		State:          int(item.State),
		DeletionMark:   item.DeletionMark,
		Version:        item.Version,
	}
}

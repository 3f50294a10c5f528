package dto

import (
	"tarifario/internal/domain/catalogs/customer"
)

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	DocumentNumber *string `json:"documentNumber"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	item := customer.NewCustomer(r.Code, r.Name)
	item.DocumentNumber = r.DocumentNumber
	item.Address = r.Address
	item.Phone = r.Phone
	item.Email = r.Email
	return item
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	DocumentNumber *string `json:"documentNumber"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Version        int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(item *customer.Customer) {
	item.Code = r.Code
	item.Name = r.Name
	item.DocumentNumber = r.DocumentNumber
	item.Address = r.Address
	item.Phone = r.Phone
	item.Email = r.Email
	item.Version = r.Version
}

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	State          int     `json:"state"`
	DeletionMark   bool    `json:"deletionMark"`
	Version        int     `json:"version"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(item *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             item.ID.String(),
		Code:           item.Code,
		Name:           item.Name,
		DocumentNumber: item.DocumentNumber,
		Address:        item.Address,
		Phone:          item.Phone,
		Email:          item.Email,
		State:          int(item.State),
		DeletionMark:   item.DeletionMark,
		Version:        item.Version,
	}
}

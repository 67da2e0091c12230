package dto

import (
	"customer-service/internal/domain/customer"
	"time"
)

// CustomerRequest is the create/update body. ID is accepted so a record read
// from GET can be sent back unchanged; the path id is the one that counts.
type CustomerRequest struct {
	ID         *int64 `json:"id,omitempty" swaggerignore:"true"`
	Name       string `json:"name" example:"Juan"`
	LastName   string `json:"lastname" example:"Perez"`
	NationalID string `json:"dni" example:"12345678"`
	Email      string `json:"email" example:"juan@x.com"`
}

func (r CustomerRequest) ToFields() customer.CustomerFields {
	return customer.CustomerFields{
		Name:       r.Name,
		LastName:   r.LastName,
		NationalID: r.NationalID,
		Email:      r.Email,
	}
}

type CustomerResponse struct {
	ID         int64     `json:"id" example:"1"`
	Name       string    `json:"name" example:"Juan"`
	LastName   string    `json:"lastname" example:"Perez"`
	NationalID string    `json:"dni" example:"12345678"`
	Email      string    `json:"email" example:"juan@x.com"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:         cust.ID,
		Name:       cust.Name,
		LastName:   cust.LastName,
		NationalID: cust.NationalID,
		Email:      cust.Email,
		CreatedAt:  cust.CreatedAt,
		UpdatedAt:  cust.UpdatedAt,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = NewCustomerResponse(cust)
	}
	return resp
}

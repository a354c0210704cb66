// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateCustomerRequest struct {
	Email           string `json:"email"            validate:"required,email,max=255"`
	Name            string `json:"name"             validate:"required,min=1,max=100"`
	ShippingAddress string `json:"shipping_address" validate:"max=500"`
}

type UpdateCustomerRequest struct {
	Name            *string `json:"name,omitempty"             validate:"omitempty,min=1,max=100"`
	ShippingAddress *string `json:"shipping_address,omitempty" validate:"omitempty,max=500"`
}

type CustomerResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	ShippingAddress string    `json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListCustomersParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p *ListCustomersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListCustomersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Email:           c.Email,
		Name:            c.Name,
		ShippingAddress: c.ShippingAddress,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToCustomerResponseList(customers []Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses
}

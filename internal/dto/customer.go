package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone"`
	BillingAddress  string `json:"billingAddress"`
	ShippingAddress string `json:"shippingAddress"`
	TaxNumber       string `json:"taxNumber"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
type UpdateCustomerRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone"`
	BillingAddress  *string `json:"billingAddress"`
	ShippingAddress *string `json:"shippingAddress"`
	TaxNumber       *string `json:"taxNumber"`
	IsActive        *bool   `json:"isActive"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID         string          `json:"customerID"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	BillingAddress     string          `json:"billingAddress"`
	ShippingAddress    string          `json:"shippingAddress"`
	TaxNumber          string          `json:"taxNumber"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:         c.CustomerID,
		Name:               c.Name,
		Email:              c.Email,
		Phone:              c.Phone,
		BillingAddress:     c.BillingAddress,
		ShippingAddress:    c.ShippingAddress,
		TaxNumber:          c.TaxNumber,
		OutstandingBalance: c.OutstandingBalance,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to a slice of CustomerResponse DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

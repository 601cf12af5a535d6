package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxRequest defines the data needed to create a new tax rate.
type CreateTaxRequest struct {
	Code string          `json:"code" binding:"required"`
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// UpdateTaxRequest defines the data allowed for updating a tax rate.
type UpdateTaxRequest struct {
	Name     *string          `json:"name"`
	Rate     *decimal.Decimal `json:"rate"`
	IsActive *bool            `json:"isActive"`
}

// TaxResponse defines the data returned for a tax rate.
type TaxResponse struct {
	TaxID     string          `json:"taxID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// ToTaxResponse converts a domain.Tax to TaxResponse DTO.
func ToTaxResponse(tax *domain.Tax) TaxResponse {
	return TaxResponse{
		TaxID:     tax.TaxID,
		Code:      tax.Code,
		Name:      tax.Name,
		Rate:      tax.Rate,
		IsActive:  tax.IsActive,
		CreatedAt: tax.CreatedAt,
		CreatedBy: tax.CreatedBy,
	}
}

// ToListTaxResponse converts a slice of domain.Tax to a slice of TaxResponse DTOs
func ToListTaxResponse(taxes []domain.Tax) []TaxResponse {
	res := make([]TaxResponse, len(taxes))
	for i := range taxes {
		res[i] = ToTaxResponse(&taxes[i])
	}
	return res
}

// ListTaxesResponse wraps the list of tax rates.
type ListTaxesResponse struct {
	Taxes []TaxResponse `json:"taxes"`
}

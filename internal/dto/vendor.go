package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest defines the data needed to create a new vendor.
type CreateVendorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	TaxNumber string `json:"taxNumber"`
}

// UpdateVendorRequest defines the data allowed for updating a vendor.
type UpdateVendorRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	TaxNumber *string `json:"taxNumber"`
	IsActive  *bool   `json:"isActive"`
}

// VendorResponse defines the data returned for a vendor.
type VendorResponse struct {
	VendorID           string          `json:"vendorID"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	TaxNumber          string          `json:"taxNumber"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToVendorResponse converts a domain.Vendor to VendorResponse DTO.
func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		VendorID:           v.VendorID,
		Name:               v.Name,
		Email:              v.Email,
		Phone:              v.Phone,
		Address:            v.Address,
		TaxNumber:          v.TaxNumber,
		OutstandingBalance: v.OutstandingBalance,
		IsActive:           v.IsActive,
		CreatedAt:          v.CreatedAt,
		CreatedBy:          v.CreatedBy,
	}
}

// ToListVendorResponse converts a slice of domain.Vendor to a slice of VendorResponse DTOs
func ToListVendorResponse(vendors []domain.Vendor) []VendorResponse {
	res := make([]VendorResponse, len(vendors))
	for i := range vendors {
		res[i] = ToVendorResponse(&vendors[i])
	}
	return res
}

// ListVendorsResponse wraps the list of vendors.
type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

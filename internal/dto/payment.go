package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment.
// PAYMENT_RECEIVED requires a customer or invoice link; PAYMENT_MADE
// requires a vendor or bill link.
type CreatePaymentRequest struct {
	PaymentType     domain.PaymentType   `json:"paymentType" binding:"required,oneof=PAYMENT_RECEIVED PAYMENT_MADE"`
	PaymentDate     time.Time            `json:"paymentDate" binding:"required"`
	Amount          decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH BANK_TRANSFER CREDIT_CARD DEBIT_CARD CHECK PAYPAL STRIPE OTHER"`
	AccountID       string               `json:"accountID" binding:"required"`
	CustomerID      *string              `json:"customerID"`
	InvoiceID       *string              `json:"invoiceID"`
	VendorID        *string              `json:"vendorID"`
	BillID          *string              `json:"billID"`
	ReferenceNumber string               `json:"referenceNumber"`
	Notes           string               `json:"notes"`
}

// UpdatePaymentRequest defines the annotation fields that may change on a
// recorded payment. Amount and document links are immutable.
type UpdatePaymentRequest struct {
	PaymentMethod   *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK_TRANSFER CREDIT_CARD DEBIT_CARD CHECK PAYPAL STRIPE OTHER"`
	ReferenceNumber *string               `json:"referenceNumber"`
	Notes           *string               `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string               `json:"paymentID"`
	PaymentType     domain.PaymentType   `json:"paymentType"`
	PaymentNumber   string               `json:"paymentNumber"`
	PaymentDate     time.Time            `json:"paymentDate"`
	Amount          decimal.Decimal      `json:"amount"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	AccountID       string               `json:"accountID"`
	CustomerID      *string              `json:"customerID,omitempty"`
	InvoiceID       *string              `json:"invoiceID,omitempty"`
	VendorID        *string              `json:"vendorID,omitempty"`
	BillID          *string              `json:"billID,omitempty"`
	ReferenceNumber string               `json:"referenceNumber"`
	Notes           string               `json:"notes"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		PaymentType:     p.PaymentType,
		PaymentNumber:   p.PaymentNumber,
		PaymentDate:     p.PaymentDate,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		AccountID:       p.AccountID,
		CustomerID:      p.CustomerID,
		InvoiceID:       p.InvoiceID,
		VendorID:        p.VendorID,
		BillID:          p.BillID,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment to a slice of PaymentResponse DTOs
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	PaymentType *string `form:"paymentType" binding:"omitempty,oneof=PAYMENT_RECEIVED PAYMENT_MADE"`
	Limit       int     `form:"limit,default=20"`
	NextToken   *string `form:"nextToken"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

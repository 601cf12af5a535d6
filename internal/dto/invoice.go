package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest defines one line of an invoice. Discount is a flat
// currency amount.
type InvoiceItemRequest struct {
	ItemID      string          `json:"itemID" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
// Totals are derived server-side from the items.
type CreateInvoiceRequest struct {
	CustomerID         string               `json:"customerID" binding:"required"`
	InvoiceNumber      string               `json:"invoiceNumber" binding:"required"`
	InvoiceDate        time.Time            `json:"invoiceDate" binding:"required"`
	DueDate            time.Time            `json:"dueDate" binding:"required"`
	Items              []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes              string               `json:"notes"`
	TermsAndConditions string               `json:"termsAndConditions"`
	BillingAddress     string               `json:"billingAddress"`
	ShippingAddress    string               `json:"shippingAddress"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
// When Items is present the full item set is replaced and totals recomputed.
type UpdateInvoiceRequest struct {
	InvoiceDate        *time.Time           `json:"invoiceDate"`
	DueDate            *time.Time           `json:"dueDate"`
	Items              []InvoiceItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	Notes              *string              `json:"notes"`
	TermsAndConditions *string              `json:"termsAndConditions"`
	BillingAddress     *string              `json:"billingAddress"`
	ShippingAddress    *string              `json:"shippingAddress"`
}

// UpdateInvoiceStatusRequest defines a status transition request.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=DRAFT SENT PARTIALLY_PAID PAID OVERDUE VOID CANCELLED"`
}

// InvoiceItemResponse defines the data returned for an invoice line.
type InvoiceItemResponse struct {
	InvoiceItemID string          `json:"invoiceItemID"`
	ItemID        string          `json:"itemID"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Discount      decimal.Decimal `json:"discount"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Amount        decimal.Decimal `json:"amount"`
	LineOrder     int             `json:"lineOrder"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID          string                `json:"invoiceID"`
	CustomerID         string                `json:"customerID"`
	InvoiceNumber      string                `json:"invoiceNumber"`
	InvoiceDate        time.Time             `json:"invoiceDate"`
	DueDate            time.Time             `json:"dueDate"`
	Status             domain.InvoiceStatus  `json:"status"`
	Items              []InvoiceItemResponse `json:"items,omitempty"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	TaxAmount          decimal.Decimal       `json:"taxAmount"`
	TotalAmount        decimal.Decimal       `json:"totalAmount"`
	PaidAmount         decimal.Decimal       `json:"paidAmount"`
	Balance            decimal.Decimal       `json:"balance"`
	Notes              string                `json:"notes"`
	TermsAndConditions string                `json:"termsAndConditions"`
	BillingAddress     string                `json:"billingAddress"`
	ShippingAddress    string                `json:"shippingAddress"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to InvoiceItemResponse DTO.
func ToInvoiceItemResponse(item *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		InvoiceItemID: item.InvoiceItemID,
		ItemID:        item.ItemID,
		Description:   item.Description,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		Discount:      item.Discount,
		TaxRate:       item.TaxRate,
		Amount:        item.Amount,
		LineOrder:     item.LineOrder,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToInvoiceItemResponse(&inv.Items[i])
	}
	return InvoiceResponse{
		InvoiceID:          inv.InvoiceID,
		CustomerID:         inv.CustomerID,
		InvoiceNumber:      inv.InvoiceNumber,
		InvoiceDate:        inv.InvoiceDate,
		DueDate:            inv.DueDate,
		Status:             inv.Status,
		Items:              items,
		Subtotal:           inv.Subtotal,
		TaxAmount:          inv.TaxAmount,
		TotalAmount:        inv.TotalAmount,
		PaidAmount:         inv.PaidAmount,
		Balance:            inv.Balance,
		Notes:              inv.Notes,
		TermsAndConditions: inv.TermsAndConditions,
		BillingAddress:     inv.BillingAddress,
		ShippingAddress:    inv.ShippingAddress,
		CreatedAt:          inv.CreatedAt,
		CreatedBy:          inv.CreatedBy,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status     *string `form:"status" binding:"omitempty,oneof=DRAFT SENT PARTIALLY_PAID PAID OVERDUE VOID CANCELLED"`
	CustomerID *string `form:"customerID"`
	Overdue    bool    `form:"overdue"`
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

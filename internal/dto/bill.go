package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillItemRequest defines one line of a bill. Discount is a percentage of
// the line subtotal.
type BillItemRequest struct {
	ItemID      string          `json:"itemID" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
}

// CreateBillRequest defines the data needed to create a new bill.
// Totals are derived server-side from the items.
type CreateBillRequest struct {
	VendorID   string            `json:"vendorID" binding:"required"`
	BillNumber string            `json:"billNumber" binding:"required"`
	BillDate   time.Time         `json:"billDate" binding:"required"`
	DueDate    time.Time         `json:"dueDate" binding:"required"`
	Items      []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	Reference  string            `json:"reference"`
	Notes      string            `json:"notes"`
}

// UpdateBillRequest defines the data allowed for updating a bill.
// When Items is present the full item set is replaced and totals recomputed.
type UpdateBillRequest struct {
	BillDate  *time.Time        `json:"billDate"`
	DueDate   *time.Time        `json:"dueDate"`
	Items     []BillItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	Reference *string           `json:"reference"`
	Notes     *string           `json:"notes"`
}

// UpdateBillStatusRequest defines a status transition request.
type UpdateBillStatusRequest struct {
	Status domain.BillStatus `json:"status" binding:"required,oneof=DRAFT SUBMITTED APPROVED PAID PARTIALLY_PAID OVERDUE CANCELLED"`
}

// BillItemResponse defines the data returned for a bill line.
type BillItemResponse struct {
	BillItemID  string          `json:"billItemID"`
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Amount      decimal.Decimal `json:"amount"`
	LineOrder   int             `json:"lineOrder"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID      string             `json:"billID"`
	VendorID    string             `json:"vendorID"`
	BillNumber  string             `json:"billNumber"`
	BillDate    time.Time          `json:"billDate"`
	DueDate     time.Time          `json:"dueDate"`
	Status      domain.BillStatus  `json:"status"`
	Items       []BillItemResponse `json:"items,omitempty"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	TaxAmount   decimal.Decimal    `json:"taxAmount"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	PaidAmount  decimal.Decimal    `json:"paidAmount"`
	Balance     decimal.Decimal    `json:"balance"`
	Reference   string             `json:"reference"`
	Notes       string             `json:"notes"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ToBillItemResponse converts a domain.BillItem to BillItemResponse DTO.
func ToBillItemResponse(item *domain.BillItem) BillItemResponse {
	return BillItemResponse{
		BillItemID:  item.BillItemID,
		ItemID:      item.ItemID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Discount:    item.Discount,
		TaxRate:     item.TaxRate,
		Amount:      item.Amount,
		LineOrder:   item.LineOrder,
	}
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(bill *domain.Bill) BillResponse {
	items := make([]BillItemResponse, len(bill.Items))
	for i := range bill.Items {
		items[i] = ToBillItemResponse(&bill.Items[i])
	}
	return BillResponse{
		BillID:      bill.BillID,
		VendorID:    bill.VendorID,
		BillNumber:  bill.BillNumber,
		BillDate:    bill.BillDate,
		DueDate:     bill.DueDate,
		Status:      bill.Status,
		Items:       items,
		Subtotal:    bill.Subtotal,
		TaxAmount:   bill.TaxAmount,
		TotalAmount: bill.TotalAmount,
		PaidAmount:  bill.PaidAmount,
		Balance:     bill.Balance,
		Reference:   bill.Reference,
		Notes:       bill.Notes,
		CreatedAt:   bill.CreatedAt,
		CreatedBy:   bill.CreatedBy,
	}
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT SUBMITTED APPROVED PAID PARTIALLY_PAID OVERDUE CANCELLED"`
	VendorID  *string `form:"vendorID"`
	Overdue   bool    `form:"overdue"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListBillsResponse wraps a page of bills.
type ListBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	NextToken *string        `json:"nextToken,omitempty"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus indicates the lifecycle state of a vendor bill.
type BillStatus string

const (
	BillDraft         BillStatus = "DRAFT"
	BillSubmitted     BillStatus = "SUBMITTED"
	BillApproved      BillStatus = "APPROVED"
	BillPaid          BillStatus = "PAID"
	BillPartiallyPaid BillStatus = "PARTIALLY_PAID"
	BillOverdue       BillStatus = "OVERDUE"
	BillCancelled     BillStatus = "CANCELLED"
)

// Bill represents a purchase bill received from a vendor.
// Totals are derived the same way as invoices, but the line discount is a
// percentage of the line subtotal rather than a flat amount.
type Bill struct {
	BillID         string          `json:"billID"`         // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"` // FK -> organizations
	VendorID       string          `json:"vendorID"`       // FK -> vendors
	BillNumber     string          `json:"billNumber"`     // Unique per organization
	BillDate       time.Time       `json:"billDate"`
	DueDate        time.Time       `json:"dueDate"` // Must not precede BillDate
	Status         BillStatus      `json:"status"`
	Items          []BillItem      `json:"items,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Balance        decimal.Decimal `json:"balance"`
	Reference      string          `json:"reference"`
	Notes          string          `json:"notes"`
	AuditFields
}

// BillItem is one line of a bill. Discount is a percentage applied to the
// line subtotal; tax is then applied on the discounted amount.
type BillItem struct {
	BillItemID  string          `json:"billItemID"` // Primary Key (UUID)
	BillID      string          `json:"billID"`     // FK -> bills
	ItemID      string          `json:"itemID"`     // FK -> items
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"` // Percent
	TaxRate     decimal.Decimal `json:"taxRate"`  // Percent
	Amount      decimal.Decimal `json:"amount"`   // Derived line total, 2 dp
	LineOrder   int             `json:"lineOrder"`
}

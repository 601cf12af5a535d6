package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceSent          InvoiceStatus = "SENT"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceOverdue       InvoiceStatus = "OVERDUE"
	InvoiceVoid          InvoiceStatus = "VOID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// Invoice represents a sales invoice issued to a customer.
//
// Subtotal, TaxAmount, TotalAmount and Balance are derived from the item
// lines and PaidAmount; they are recomputed on every create/update and
// never taken from client input. Balance is always TotalAmount − PaidAmount.
type Invoice struct {
	InvoiceID          string          `json:"invoiceID"`      // Primary Key (UUID)
	OrganizationID     string          `json:"organizationID"` // FK -> organizations
	CustomerID         string          `json:"customerID"`     // FK -> customers
	InvoiceNumber      string          `json:"invoiceNumber"`  // Unique per organization
	InvoiceDate        time.Time       `json:"invoiceDate"`
	DueDate            time.Time       `json:"dueDate"`
	Status             InvoiceStatus   `json:"status"`
	Items              []InvoiceItem   `json:"items,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	Balance            decimal.Decimal `json:"balance"`
	Notes              string          `json:"notes"`
	TermsAndConditions string          `json:"termsAndConditions"`
	BillingAddress     string          `json:"billingAddress"`
	ShippingAddress    string          `json:"shippingAddress"`
	AuditFields
}

// InvoiceItem is one line of an invoice. Discount is a flat currency
// amount subtracted from quantity × unit price before tax.
type InvoiceItem struct {
	InvoiceItemID string          `json:"invoiceItemID"` // Primary Key (UUID)
	InvoiceID     string          `json:"invoiceID"`     // FK -> invoices
	ItemID        string          `json:"itemID"`        // FK -> items
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Discount      decimal.Decimal `json:"discount"` // Flat amount
	TaxRate       decimal.Decimal `json:"taxRate"`  // Percent
	Amount        decimal.Decimal `json:"amount"`   // Derived line total, 2 dp
	LineOrder     int             `json:"lineOrder"`
}

// IsTerminal reports whether no further status transitions are allowed.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceVoid || s == InvoiceCancelled
}

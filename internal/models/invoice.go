package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

// Invoice represents a row of the invoices table.
type Invoice struct {
	InvoiceID          string          `db:"invoice_id"`
	OrganizationID     string          `db:"organization_id"`
	CustomerID         string          `db:"customer_id"`
	InvoiceNumber      string          `db:"invoice_number"`
	InvoiceDate        time.Time       `db:"invoice_date"`
	DueDate            time.Time       `db:"due_date"`
	Status             InvoiceStatus   `db:"status"`
	Subtotal           decimal.Decimal `db:"subtotal"`
	TaxAmount          decimal.Decimal `db:"tax_amount"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	PaidAmount         decimal.Decimal `db:"paid_amount"`
	Balance            decimal.Decimal `db:"balance"`
	Notes              string          `db:"notes"`
	TermsAndConditions string          `db:"terms_and_conditions"`
	BillingAddress     string          `db:"billing_address"`
	ShippingAddress    string          `db:"shipping_address"`
	AuditFields
}

// InvoiceItem represents a row of the invoice_items table.
type InvoiceItem struct {
	InvoiceItemID string          `db:"invoice_item_id"`
	InvoiceID     string          `db:"invoice_id"`
	ItemID        string          `db:"item_id"`
	Description   string          `db:"description"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Discount      decimal.Decimal `db:"discount"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	Amount        decimal.Decimal `db:"amount"`
	LineOrder     int             `db:"line_order"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a row of the payments table.
type Payment struct {
	PaymentID       string          `db:"payment_id"`
	OrganizationID  string          `db:"organization_id"`
	PaymentType     string          `db:"payment_type"`
	PaymentNumber   string          `db:"payment_number"`
	PaymentDate     time.Time       `db:"payment_date"`
	Amount          decimal.Decimal `db:"amount"`
	PaymentMethod   string          `db:"payment_method"`
	AccountID       string          `db:"account_id"`
	CustomerID      *string         `db:"customer_id"` // Nullable
	InvoiceID       *string         `db:"invoice_id"`  // Nullable
	VendorID        *string         `db:"vendor_id"`   // Nullable
	BillID          *string         `db:"bill_id"`     // Nullable
	ReferenceNumber string          `db:"reference_number"`
	Notes           string          `db:"notes"`
	AuditFields
}

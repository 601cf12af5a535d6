package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus indicates the lifecycle state of a bill.
type BillStatus string

// Bill represents a row of the bills table.
type Bill struct {
	BillID         string          `db:"bill_id"`
	OrganizationID string          `db:"organization_id"`
	VendorID       string          `db:"vendor_id"`
	BillNumber     string          `db:"bill_number"`
	BillDate       time.Time       `db:"bill_date"`
	DueDate        time.Time       `db:"due_date"`
	Status         BillStatus      `db:"status"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	Balance        decimal.Decimal `db:"balance"`
	Reference      string          `db:"reference"`
	Notes          string          `db:"notes"`
	AuditFields
}

// BillItem represents a row of the bill_items table.
type BillItem struct {
	BillItemID  string          `db:"bill_item_id"`
	BillID      string          `db:"bill_id"`
	ItemID      string          `db:"item_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Discount    decimal.Decimal `db:"discount"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	Amount      decimal.Decimal `db:"amount"`
	LineOrder   int             `db:"line_order"`
}

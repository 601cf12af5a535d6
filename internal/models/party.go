package models

import (
	"github.com/shopspring/decimal"
)

// Customer represents a row of the customers table.
type Customer struct {
	CustomerID         string          `db:"customer_id"`
	OrganizationID     string          `db:"organization_id"`
	Name               string          `db:"name"`
	Email              string          `db:"email"`
	Phone              string          `db:"phone"`
	BillingAddress     string          `db:"billing_address"`
	ShippingAddress    string          `db:"shipping_address"`
	TaxNumber          string          `db:"tax_number"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`
	IsActive           bool            `db:"is_active"`
	AuditFields
}

// Vendor represents a row of the vendors table.
type Vendor struct {
	VendorID           string          `db:"vendor_id"`
	OrganizationID     string          `db:"organization_id"`
	Name               string          `db:"name"`
	Email              string          `db:"email"`
	Phone              string          `db:"phone"`
	Address            string          `db:"address"`
	TaxNumber          string          `db:"tax_number"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`
	IsActive           bool            `db:"is_active"`
	AuditFields
}

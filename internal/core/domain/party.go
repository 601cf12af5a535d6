package domain

import (
	"github.com/shopspring/decimal"
)

// Customer is a party the organization sells to. OutstandingBalance mirrors
// the sum of unpaid invoice balances; it is adjusted by invoice issuance and
// payment reconciliation, never recomputed from invoices.
type Customer struct {
	CustomerID         string          `json:"customerID"`     // Primary Key (UUID)
	OrganizationID     string          `json:"organizationID"` // FK -> organizations
	Name               string          `json:"name"`
	Email              string          `json:"email"` // Unique per organization
	Phone              string          `json:"phone"`
	BillingAddress     string          `json:"billingAddress"`
	ShippingAddress    string          `json:"shippingAddress"`
	TaxNumber          string          `json:"taxNumber"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}

// Vendor is a party the organization buys from. OutstandingBalance mirrors
// the sum of unpaid bill balances.
type Vendor struct {
	VendorID           string          `json:"vendorID"`       // Primary Key (UUID)
	OrganizationID     string          `json:"organizationID"` // FK -> organizations
	Name               string          `json:"name"`
	Email              string          `json:"email"` // Unique per organization
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	TaxNumber          string          `json:"taxNumber"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}

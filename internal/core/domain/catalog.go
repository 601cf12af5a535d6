package domain

import (
	"github.com/shopspring/decimal"
)

// ItemType distinguishes physical products from services.
type ItemType string

const (
	ItemProduct ItemType = "PRODUCT"
	ItemService ItemType = "SERVICE"
)

// Item is a sellable or purchasable catalog entry referenced by invoice and
// bill lines.
type Item struct {
	ItemID         string          `json:"itemID"`         // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"` // FK -> organizations
	Code           string          `json:"code"`           // Unique per organization
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	ItemType       ItemType        `json:"itemType"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Tax is a named tax rate applicable to invoice and bill lines.
type Tax struct {
	TaxID          string          `json:"taxID"`          // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"` // FK -> organizations
	Code           string          `json:"code"`           // Unique per organization
	Name           string          `json:"name"`
	Rate           decimal.Decimal `json:"rate"` // Percent
	IsActive       bool            `json:"isActive"`
	AuditFields
}

package models

import (
	"github.com/shopspring/decimal"
)

// Item represents a row of the items table.
type Item struct {
	ItemID         string          `db:"item_id"`
	OrganizationID string          `db:"organization_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	ItemType       string          `db:"item_type"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// Tax represents a row of the taxes table.
type Tax struct {
	TaxID          string          `db:"tax_id"`
	OrganizationID string          `db:"organization_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Rate           decimal.Decimal `db:"rate"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

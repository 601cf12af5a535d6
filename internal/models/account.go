package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset           AccountType = "ASSET"
	Liability       AccountType = "LIABILITY"
	Equity          AccountType = "EQUITY"
	Revenue         AccountType = "REVENUE"
	Expense         AccountType = "EXPENSE"
	CostOfGoodsSold AccountType = "COST_OF_GOODS_SOLD"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	OrganizationID  string          `db:"organization_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	Balance         decimal.Decimal `db:"balance"`
	IsActive        bool            `db:"is_active"`
	IsSystem        bool            `db:"is_system"`
	TaxApplicable   bool            `db:"tax_applicable"`
	AuditFields
}

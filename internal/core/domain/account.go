package domain

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

// Account represents one entry in an organization's chart of accounts.
// Balance is mutated exclusively by journal posting; every other writer
// goes through the account service which never touches Balance.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	OrganizationID  string          `json:"organizationID"`  // FK -> organizations (NON-NULL)
	Code            string          `json:"code"`            // Unique per organization
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string          `json:"parentAccountID"` // Nullable self-reference, tree structure
	Description     string          `json:"description"`
	Balance         decimal.Decimal `json:"balance"` // Persisted running balance, natural-positive sign
	IsActive        bool            `json:"isActive"`
	IsSystem        bool            `json:"isSystem"` // Built-in accounts, protected from edit/delete
	TaxApplicable   bool            `json:"taxApplicable"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account line of a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// PAndLReport summarizes revenue against expenses for a period.
type PAndLReport struct {
	FromDate        time.Time         `json:"fromDate"`
	ToDate          time.Time         `json:"toDate"`
	Revenue         []TrialBalanceRow `json:"revenue"`
	CostOfGoodsSold []TrialBalanceRow `json:"costOfGoodsSold"`
	Expenses        []TrialBalanceRow `json:"expenses"`
	TotalRevenue    decimal.Decimal   `json:"totalRevenue"`
	TotalCOGS       decimal.Decimal   `json:"totalCOGS"`
	GrossProfit     decimal.Decimal   `json:"grossProfit"`
	TotalExpenses   decimal.Decimal   `json:"totalExpenses"`
	NetProfit       decimal.Decimal   `json:"netProfit"`
}

// BalanceSheetReport presents assets against liabilities and equity as of a date.
type BalanceSheetReport struct {
	AsOf             time.Time         `json:"asOf"`
	Assets           []TrialBalanceRow `json:"assets"`
	Liabilities      []TrialBalanceRow `json:"liabilities"`
	Equity           []TrialBalanceRow `json:"equity"`
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal   `json:"totalEquity"`
}

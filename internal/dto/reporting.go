package dto

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse wraps the trial balance rows with their totals.
// A correct ledger always has TotalDebit equal to TotalCredit.
type TrialBalanceResponse struct {
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// ReportPeriodParams defines query parameters for period-based reports.
type ReportPeriodParams struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // YYYY-MM-DD
}

// ReportAsOfParams defines query parameters for point-in-time reports.
type ReportAsOfParams struct {
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}

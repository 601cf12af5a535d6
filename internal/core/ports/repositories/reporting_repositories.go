package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// ReportingRepository defines read operations for financial report data.
// Rows carry per-account debit and credit aggregates; the service derives
// the net figures.
type ReportingRepository interface {
	// GetTrialBalanceData returns one row per active account with its current
	// balance placed in the debit or credit column by account type.
	GetTrialBalanceData(ctx context.Context, organizationID string) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData aggregates posted journal lines in the date range
	// for revenue, cost of goods sold and expense accounts.
	GetProfitAndLossData(ctx context.Context, organizationID string, from, to time.Time) (revenue, cogs, expenses []domain.TrialBalanceRow, err error)

	// GetBalanceSheetData aggregates posted journal lines up to the date for
	// asset, liability and equity accounts.
	GetBalanceSheetData(ctx context.Context, organizationID string, asOf time.Time) (assets, liabilities, equity []domain.TrialBalanceRow, err error)
}

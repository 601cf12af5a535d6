package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report from current account balances.
	TrialBalance(ctx context.Context, organizationID string, userID string) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss generates a profit and loss report for a specific period.
	ProfitAndLoss(ctx context.Context, organizationID string, from, to time.Time, userID string) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, organizationID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
}

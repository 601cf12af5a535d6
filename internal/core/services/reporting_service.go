package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	orgSvc        portssvc.OrganizationSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, orgSvc portssvc.OrganizationSvcFacade) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		orgSvc:        orgSvc,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// rowNet returns a report row's net amount on its account type's natural
// side: debit minus credit for ASSET/EXPENSE/COST_OF_GOODS_SOLD, credit
// minus debit for LIABILITY/EQUITY/REVENUE.
func rowNet(row domain.TrialBalanceRow) decimal.Decimal {
	switch row.AccountType {
	case domain.Liability, domain.Equity, domain.Revenue:
		return row.Credit.Sub(row.Debit)
	default:
		return row.Debit.Sub(row.Credit)
	}
}

func sumNet(rows []domain.TrialBalanceRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(rowNet(row))
	}
	return total
}

// TrialBalance generates a trial balance report from current account balances.
func (s *reportingService) TrialBalance(ctx context.Context, organizationID string, userID string) ([]domain.TrialBalanceRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		logger.Warn("Authorization failed for TrialBalance", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, organizationID)
	if err != nil {
		logger.Error("Failed to retrieve trial balance data", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	logger.Info("Trial balance report generated",
		slog.String("organization_id", organizationID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, organizationID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		logger.Warn("Authorization failed for ProfitAndLoss", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	revenue, cogs, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, organizationID, from, to)
	if err != nil {
		logger.Error("Failed to retrieve profit and loss data",
			slog.String("error", err.Error()),
			slog.String("organization_id", organizationID),
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	totalRevenue := sumNet(revenue)
	totalCOGS := sumNet(cogs)
	totalExpenses := sumNet(expenses)
	grossProfit := totalRevenue.Sub(totalCOGS)

	report := &domain.PAndLReport{
		FromDate:        from,
		ToDate:          to,
		Revenue:         revenue,
		CostOfGoodsSold: cogs,
		Expenses:        expenses,
		TotalRevenue:    totalRevenue,
		TotalCOGS:       totalCOGS,
		GrossProfit:     grossProfit,
		TotalExpenses:   totalExpenses,
		NetProfit:       grossProfit.Sub(totalExpenses),
	}

	logger.Info("Profit and loss report generated",
		slog.String("organization_id", organizationID),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date.
func (s *reportingService) BalanceSheet(ctx context.Context, organizationID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		logger.Warn("Authorization failed for BalanceSheet", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, organizationID, asOf)
	if err != nil {
		logger.Error("Failed to retrieve balance sheet data",
			slog.String("error", err.Error()),
			slog.String("organization_id", organizationID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumNet(assets),
		TotalLiabilities: sumNet(liabilities),
		TotalEquity:      sumNet(equity),
	}

	logger.Info("Balance sheet report generated",
		slog.String("organization_id", organizationID),
		slog.String("asOf", asOf.Format(time.RFC3339)))
	return report, nil
}

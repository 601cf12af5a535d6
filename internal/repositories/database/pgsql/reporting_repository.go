package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData returns one row per active account with its current
// balance placed in the debit or credit column by account type. Balances are
// stored natural-positive, so a negative balance lands on the opposite side.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, organizationID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT account_id, code, name, account_type, COALESCE(balance, 0)
		FROM accounts
		WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		var balance decimal.Decimal

		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &accountType, &balance); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)

		debitNatural := row.AccountType == domain.Asset || row.AccountType == domain.Expense || row.AccountType == domain.CostOfGoodsSold
		switch {
		case debitNatural && balance.Sign() >= 0:
			row.Debit = balance
		case debitNatural:
			row.Credit = balance.Neg()
		case balance.Sign() >= 0:
			row.Credit = balance
		default:
			row.Debit = balance.Neg()
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// aggregateLines sums posted journal lines per account for the given account
// types and date bounds, grouped into one slice per account type. Reversed
// entries stay included; their reversing entries cancel them out.
func (r *reportingRepository) aggregateLines(ctx context.Context, organizationID string, accountTypes []string, from, to time.Time) (map[string][]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit_amount), 0) AS total_debit,
		       COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM journal_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.organization_id = $1
			AND e.status IN ('POSTED', 'REVERSED')
			AND e.entry_date >= $2
			AND e.entry_date <= $3
			AND a.account_type = ANY($4)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("error querying report aggregates: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.TrialBalanceRow, len(accountTypes))
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &accountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("error scanning report aggregate row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		grouped[accountType] = append(grouped[accountType], row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report aggregate rows: %w", err)
	}

	return grouped, nil
}

// GetProfitAndLossData aggregates posted journal lines in the date range for
// revenue, cost of goods sold and expense accounts.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, organizationID string, from, to time.Time) (revenue, cogs, expenses []domain.TrialBalanceRow, err error) {
	grouped, err := r.aggregateLines(ctx, organizationID, []string{
		string(domain.Revenue),
		string(domain.CostOfGoodsSold),
		string(domain.Expense),
	}, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}

	return grouped[string(domain.Revenue)], grouped[string(domain.CostOfGoodsSold)], grouped[string(domain.Expense)], nil
}

// GetBalanceSheetData aggregates posted journal lines up to the date for
// asset, liability and equity accounts.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, organizationID string, asOf time.Time) (assets, liabilities, equity []domain.TrialBalanceRow, err error) {
	// Lower bound far enough back to cover all history.
	epoch := time.Time{}
	grouped, err := r.aggregateLines(ctx, organizationID, []string{
		string(domain.Asset),
		string(domain.Liability),
		string(domain.Equity),
	}, epoch, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}

	return grouped[string(domain.Asset)], grouped[string(domain.Liability)], grouped[string(domain.Equity)], nil
}

package accounting_test

import (
	"testing"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debitLine(accountID string, amount float64) domain.JournalLine {
	return domain.JournalLine{
		LineID:       "line_" + accountID,
		AccountID:    accountID,
		DebitAmount:  decimal.NewFromFloat(amount),
		CreditAmount: decimal.Zero,
	}
}

func creditLine(accountID string, amount float64) domain.JournalLine {
	return domain.JournalLine{
		LineID:       "line_" + accountID,
		AccountID:    accountID,
		DebitAmount:  decimal.Zero,
		CreditAmount: decimal.NewFromFloat(amount),
	}
}

func TestCalculateBalanceDelta(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalLine
		accountType domain.AccountType
		want        decimal.Decimal
		wantErr     bool
	}{
		{
			name:        "debit to asset increases balance",
			line:        debitLine("acc_cash", 100),
			accountType: domain.Asset,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "credit to asset decreases balance",
			line:        creditLine("acc_cash", 100),
			accountType: domain.Asset,
			want:        decimal.NewFromInt(-100),
		},
		{
			name:        "debit to expense increases balance",
			line:        debitLine("acc_rent", 50),
			accountType: domain.Expense,
			want:        decimal.NewFromInt(50),
		},
		{
			name:        "debit to cost of goods sold increases balance",
			line:        debitLine("acc_cogs", 25),
			accountType: domain.CostOfGoodsSold,
			want:        decimal.NewFromInt(25),
		},
		{
			name:        "credit to revenue increases balance",
			line:        creditLine("acc_sales", 100),
			accountType: domain.Revenue,
			want:        decimal.NewFromInt(100),
		},
		{
			name:        "debit to liability decreases balance",
			line:        debitLine("acc_loan", 75),
			accountType: domain.Liability,
			want:        decimal.NewFromInt(-75),
		},
		{
			name:        "credit to equity increases balance",
			line:        creditLine("acc_capital", 500),
			accountType: domain.Equity,
			want:        decimal.NewFromInt(500),
		},
		{
			name:        "unknown account type",
			line:        debitLine("acc_x", 10),
			accountType: domain.AccountType("SOMETHING"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.CalculateBalanceDelta(tt.line, tt.accountType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr bool
		errMsg  string
	}{
		{
			name: "balanced two-line entry",
			lines: []domain.JournalLine{
				debitLine("acc_cash", 100),
				creditLine("acc_sales", 100),
			},
		},
		{
			name: "balanced multi-line entry",
			lines: []domain.JournalLine{
				debitLine("acc_cash", 60),
				debitLine("acc_ar", 40),
				creditLine("acc_sales", 100),
			},
		},
		{
			name:    "unbalanced single line",
			lines:   []domain.JournalLine{debitLine("acc_cash", 100)},
			wantErr: true,
			errMsg:  "does not balance",
		},
		{
			name:    "empty line set",
			lines:   []domain.JournalLine{},
			wantErr: true,
			errMsg:  "at least one line",
		},
		{
			name: "unbalanced entry",
			lines: []domain.JournalLine{
				debitLine("acc_cash", 100),
				creditLine("acc_sales", 90),
			},
			wantErr: true,
			errMsg:  "does not balance",
		},
		{
			// One-sided lines are convention only; a line carrying both a
			// debit and a credit is accepted as long as the entry balances.
			name: "balanced entry with a mixed-side line",
			lines: []domain.JournalLine{
				{LineID: "line_both", AccountID: "acc_x", DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(40)},
				creditLine("acc_sales", 60),
			},
		},
		{
			name: "zero-amount line in a balanced entry",
			lines: []domain.JournalLine{
				debitLine("acc_cash", 100),
				{LineID: "line_empty", AccountID: "acc_y", DebitAmount: decimal.Zero, CreditAmount: decimal.Zero},
				creditLine("acc_sales", 100),
			},
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				{LineID: "line_neg", AccountID: "acc_x", DebitAmount: decimal.NewFromInt(-10), CreditAmount: decimal.Zero},
				creditLine("acc_sales", 10),
			},
			wantErr: true,
			errMsg:  "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryBalance(tt.lines)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("acc_cash", 60.5),
		debitLine("acc_ar", 39.5),
		creditLine("acc_sales", 100),
	}
	totalDebit, totalCredit := accounting.EntryTotals(lines)
	assert.True(t, decimal.NewFromInt(100).Equal(totalDebit))
	assert.True(t, decimal.NewFromInt(100).Equal(totalCredit))
}

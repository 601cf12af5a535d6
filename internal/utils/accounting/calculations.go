package accounting

import (
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateBalanceDelta returns the signed change a journal line applies to
// its account's balance. Balances are stored natural-positive, so the sign
// depends on the account type:
// DEBIT to ASSET/EXPENSE/COST_OF_GOODS_SOLD -> Positive (+)
// CREDIT to ASSET/EXPENSE/COST_OF_GOODS_SOLD -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateBalanceDelta(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	delta := line.DebitAmount.Sub(line.CreditAmount)

	switch accountType {
	case domain.Asset, domain.Expense, domain.CostOfGoodsSold:
		return delta, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return delta.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// EntryTotals sums the debit and credit sides of a set of journal lines.
func EntryTotals(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance checks that the lines form a valid double-entry set:
// at least one line, no negative amounts, and total debits equal to total
// credits. A line carrying both a debit and a credit is unusual but legal;
// one-sided lines are convention, not a hard rule.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("journal entry must have at least one line")
	}

	zero := decimal.Zero
	for _, line := range lines {
		if line.DebitAmount.LessThan(zero) || line.CreditAmount.LessThan(zero) {
			return fmt.Errorf("line amounts must not be negative for line ID %s", line.LineID)
		}
	}

	totalDebit, totalCredit := EntryTotals(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("journal entry does not balance: debits %s, credits %s", totalDebit.String(), totalCredit.String())
	}

	return nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus indicates the state of a journal entry.
type JournalEntryStatus string

const (
	EntryDraft    JournalEntryStatus = "DRAFT"
	EntryPosted   JournalEntryStatus = "POSTED"
	EntryReversed JournalEntryStatus = "REVERSED"
)

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID          string             `db:"entry_id"`
	OrganizationID   string             `db:"organization_id"`
	JournalNumber    string             `db:"journal_number"`
	EntryDate        time.Time          `db:"entry_date"`
	Reference        string             `db:"reference"`
	Description      string             `db:"description"`
	Status           JournalEntryStatus `db:"status"`
	TotalDebit       decimal.Decimal    `db:"total_debit"`
	TotalCredit      decimal.Decimal    `db:"total_credit"`
	OriginalEntryID  *string            `db:"original_entry_id"`  // Nullable
	ReversingEntryID *string            `db:"reversing_entry_id"` // Nullable
	AuditFields
}

// JournalLine represents a row of the journal_lines table.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	LineOrder    int             `db:"line_order"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus indicates the lifecycle state of a journal entry.
type JournalEntryStatus string

const (
	EntryDraft    JournalEntryStatus = "DRAFT"
	EntryPosted   JournalEntryStatus = "POSTED"
	EntryReversed JournalEntryStatus = "REVERSED"
)

// JournalEntry represents a balanced set of debit/credit lines recorded
// against accounts; the atomic unit of ledger mutation.
//
// A DRAFT entry is mutable and deletable. Posting applies the lines to
// account balances and locks the entry. A POSTED entry is immutable except
// for reversal, which creates a new entry with the sides swapped.
type JournalEntry struct {
	EntryID          string             `json:"entryID"`        // Primary Key (UUID)
	OrganizationID   string             `json:"organizationID"` // FK -> organizations
	JournalNumber    string             `json:"journalNumber"`  // Unique per organization
	EntryDate        time.Time          `json:"entryDate"`
	Reference        string             `json:"reference"`
	Description      string             `json:"description"`
	Status           JournalEntryStatus `json:"status"`
	TotalDebit       decimal.Decimal    `json:"totalDebit"`  // Derived: sum of line debits
	TotalCredit      decimal.Decimal    `json:"totalCredit"` // Derived: sum of line credits
	OriginalEntryID  *string            `json:"originalEntryID,omitempty"`  // Set on reversing entries
	ReversingEntryID *string            `json:"reversingEntryID,omitempty"` // Set on reversed entries
	Lines            []JournalLine      `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line item within a JournalEntry, affecting one
// account. Exactly one of DebitAmount/CreditAmount is non-zero by
// convention, though mutual exclusivity is not hard-enforced.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (UUID)
	EntryID      string          `json:"entryID"` // FK -> journal_entries
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineOrder    int             `json:"lineOrder"`
	AuditFields
}

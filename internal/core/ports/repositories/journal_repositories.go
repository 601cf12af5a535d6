package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries for an organization
	// using token-based pagination. An optional status filters the result.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, organizationID string, status *domain.JournalEntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindLinesByEntryID retrieves all lines of a single journal entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated list of lines touching a specific
	// account, newest first, using token-based pagination.
	ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)

	// CountEntriesOnDate returns how many entries were recorded on a calendar
	// date, for journal number generation.
	CountEntriesOnDate(ctx context.Context, organizationID string, date time.Time) (int, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a new draft entry and its lines. No balances change.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry replaces the mutable fields and lines of a draft entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// PostEntry marks a draft entry as posted and applies the balance changes
	// to the affected accounts atomically.
	PostEntry(ctx context.Context, organizationID string, entryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// SaveReversal persists a reversing entry already in posted state, links it
	// to the original, marks the original as reversed and applies the balance
	// changes, all atomically.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, balanceChanges map[string]decimal.Decimal) error

	// DeleteEntry removes a draft entry and its lines.
	DeleteEntry(ctx context.Context, organizationID string, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}

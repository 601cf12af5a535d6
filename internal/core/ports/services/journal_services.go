package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry by its ID.
	GetEntryByID(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries in an organization.
	ListEntries(ctx context.Context, organizationID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListLinesByAccount retrieves journal lines for a specific account.
	ListLinesByAccount(ctx context.Context, organizationID string, accountID string, userID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error)
}

// JournalWriterSvc defines write operations for journal entry data
type JournalWriterSvc interface {
	// CreateEntry persists a new draft journal entry with its lines.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateEntry updates a draft entry's details and lines. Posted and
	// reversed entries are immutable.
	UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry posts a draft entry, applying its lines to account balances.
	PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a reversing entry for a posted entry.
	ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, organizationID string, entryID string, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

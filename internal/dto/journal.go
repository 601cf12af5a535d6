package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines one line of a new journal entry.
// Exactly one of debitAmount/creditAmount must be positive; the other zero.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Reference   string                     `json:"reference"`
	Description string                     `json:"description"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the data allowed for updating a draft entry.
// When Lines is present the full line set is replaced.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time                 `json:"entryDate"`
	Reference   *string                    `json:"reference"`
	Description *string                    `json:"description"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineOrder    int             `json:"lineOrder"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                    `json:"entryID"`
	JournalNumber    string                    `json:"journalNumber"`
	EntryDate        time.Time                 `json:"entryDate"`
	Reference        string                    `json:"reference"`
	Description      string                    `json:"description"`
	Status           domain.JournalEntryStatus `json:"status"`
	TotalDebit       decimal.Decimal           `json:"totalDebit"`
	TotalCredit      decimal.Decimal           `json:"totalCredit"`
	OriginalEntryID  *string                   `json:"originalEntryID,omitempty"`
	ReversingEntryID *string                   `json:"reversingEntryID,omitempty"`
	Lines            []JournalLineResponse     `json:"lines,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
	CreatedBy        string                    `json:"createdBy"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		Description:  line.Description,
		DebitAmount:  line.DebitAmount,
		CreditAmount: line.CreditAmount,
		LineOrder:    line.LineOrder,
	}
}

// ToJournalLineResponses converts a slice of domain.JournalLine to []JournalLineResponse.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:          entry.EntryID,
		JournalNumber:    entry.JournalNumber,
		EntryDate:        entry.EntryDate,
		Reference:        entry.Reference,
		Description:      entry.Description,
		Status:           entry.Status,
		TotalDebit:       entry.TotalDebit,
		TotalCredit:      entry.TotalCredit,
		OriginalEntryID:  entry.OriginalEntryID,
		ReversingEntryID: entry.ReversingEntryID,
		Lines:            ToJournalLineResponses(entry.Lines),
		CreatedAt:        entry.CreatedAt,
		CreatedBy:        entry.CreatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListJournalLinesParams defines query parameters for listing lines by account.
type ListJournalLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalLinesResponse wraps a page of journal lines.
type ListJournalLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

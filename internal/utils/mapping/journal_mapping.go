package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		OrganizationID:   d.OrganizationID,
		JournalNumber:    d.JournalNumber,
		EntryDate:        d.EntryDate,
		Reference:        d.Reference,
		Description:      d.Description,
		Status:           models.JournalEntryStatus(d.Status),
		TotalDebit:       d.TotalDebit,
		TotalCredit:      d.TotalCredit,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		OrganizationID:   m.OrganizationID,
		JournalNumber:    m.JournalNumber,
		EntryDate:        m.EntryDate,
		Reference:        m.Reference,
		Description:      m.Description,
		Status:           domain.JournalEntryStatus(m.Status),
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		LineOrder:    d.LineOrder,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		LineOrder:    m.LineOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

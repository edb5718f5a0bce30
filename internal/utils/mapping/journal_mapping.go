package mapping

import (
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		Number:         d.Number,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      d.Reference,
		Status:         models.JournalStatus(d.Status),
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		PostedAt:       d.PostedAt,
		PostedBy:       nullableString(d.PostedBy),
		ReversedAt:     d.ReversedAt,
		ReversedBy:     nullableString(d.ReversedBy),
		ReversalReason: nullableString(d.ReversalReason),
		ReversalOfID:   nullableString(d.ReversalOfID),
		ReversedByID:   nullableString(d.ReversedByID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		Number:         m.Number,
		EntryDate:      domain.DateOnly(m.EntryDate),
		Description:    m.Description,
		Reference:      m.Reference,
		Status:         domain.JournalStatus(m.Status),
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		PostedAt:       m.PostedAt,
		PostedBy:       derefString(m.PostedBy),
		ReversedAt:     m.ReversedAt,
		ReversedBy:     derefString(m.ReversedBy),
		ReversalReason: derefString(m.ReversalReason),
		ReversalOfID:   derefString(m.ReversalOfID),
		ReversedByID:   derefString(m.ReversedByID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		AccountCode:    d.AccountCode,
		AccountName:    d.AccountName,
		Description:    d.Description,
		Reference:      d.Reference,
		Debit:          d.Debit,
		Credit:         d.Credit,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		LineNumber:     m.LineNumber,
		AccountID:      m.AccountID,
		AccountCode:    m.AccountCode,
		AccountName:    m.AccountName,
		Description:    m.Description,
		Reference:      m.Reference,
		Debit:          m.Debit,
		Credit:         m.Credit,
	}
}

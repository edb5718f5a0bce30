package mapping

import (
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID:  d.LedgerEntryID,
		AccountID:      d.AccountID,
		AccountCode:    d.AccountCode,
		AccountName:    d.AccountName,
		JournalEntryID: d.JournalEntryID,
		JournalNumber:  d.JournalNumber,
		LineID:         d.LineID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      d.Reference,
		Debit:          d.Debit,
		Credit:         d.Credit,
		RunningBalance: d.RunningBalance,
		Sequence:       d.Sequence,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:  m.LedgerEntryID,
		AccountID:      m.AccountID,
		AccountCode:    m.AccountCode,
		AccountName:    m.AccountName,
		JournalEntryID: m.JournalEntryID,
		JournalNumber:  m.JournalNumber,
		LineID:         m.LineID,
		EntryDate:      domain.DateOnly(m.EntryDate),
		Description:    m.Description,
		Reference:      m.Reference,
		Debit:          m.Debit,
		Credit:         m.Credit,
		RunningBalance: m.RunningBalance,
		Sequence:       m.Sequence,
		CreatedAt:      m.CreatedAt,
	}
}

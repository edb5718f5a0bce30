package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves a journal entry with its lines.
	GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves journal entries ordered by date then number.
	ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournalEntry validates and stores a new DRAFT entry.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error)

	// PostJournalEntry moves a DRAFT entry to POSTED and projects it into the ledger.
	PostJournalEntry(ctx context.Context, journalEntryID string, actor string) (*domain.JournalEntry, error)

	// ReverseJournalEntry posts an offsetting entry and marks the original REVERSED.
	// It returns the offsetting entry.
	ReverseJournalEntry(ctx context.Context, journalEntryID string, reason string, actor string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a DRAFT entry.
	DeleteJournalEntry(ctx context.Context, journalEntryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalEntryByID retrieves a journal entry together with its lines.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves journal entries ordered by date then number, without lines.
	ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error)

	// HasLinesForAccount reports whether a line of any entry, whatever its status, references the account.
	HasLinesForAccount(ctx context.Context, accountID string) (bool, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournalEntry persists a journal entry and its lines.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntryStatus persists the status, posting and reversal fields of an entry.
	UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry) error

	// DeleteJournalEntry removes an entry and its lines.
	DeleteJournalEntry(ctx context.Context, journalEntryID string) error
}

// JournalTransactionSupport defines operations that must run inside a transaction
type JournalTransactionSupport interface {
	// FindJournalEntryByIDForUpdate retrieves an entry with its lines and locks it.
	FindJournalEntryByIDForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// NextJournalSequence allocates the next display sequence for a year.
	NextJournalSequence(ctx context.Context, year int) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalTransactionSupport
}

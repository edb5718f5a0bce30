package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

// LedgerReaderSvc defines read operations on the general ledger
type LedgerReaderSvc interface {
	// QueryGeneralLedger returns one page of rows in canonical order and, when more rows
	// remain, the token for the next page.
	QueryGeneralLedger(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error)

	// HasActivity reports whether any ledger row references the account.
	HasActivity(ctx context.Context, accountID string) (bool, error)
}

// LedgerWriterSvc defines projection of posted entries into the ledger
type LedgerWriterSvc interface {
	// AppendEntry writes one row per line of a posted entry, using the repositories of
	// the caller's transaction.
	AppendEntry(ctx context.Context, repos portsrepo.RepositoryProvider, entry *domain.JournalEntry) ([]domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

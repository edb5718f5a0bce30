package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for general-ledger rows
type LedgerReader interface {
	// ListLedgerEntries returns rows matching the filter in canonical order
	// (entry date, account code, sequence). Limit and NextToken are ignored.
	ListLedgerEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)

	// HasLedgerEntries reports whether any row references the account.
	HasLedgerEntries(ctx context.Context, accountID string) (bool, error)
}

// LedgerWriter defines write operations for general-ledger rows
type LedgerWriter interface {
	// NextLedgerSequence allocates the next insertion sequence. Inside a transaction it
	// also serializes ledger appends until the transaction ends.
	NextLedgerSequence(ctx context.Context) (int64, error)

	// InsertLedgerEntry appends a row.
	InsertLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateRunningBalances rewrites the running balance of existing rows, keyed by row ID.
	UpdateRunningBalances(ctx context.Context, balances map[string]decimal.Decimal) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

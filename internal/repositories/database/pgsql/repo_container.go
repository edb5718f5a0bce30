package pgsql

import (
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

// NewRepositoryProvider builds repositories over db, which is either the pool or an open transaction.
func NewRepositoryProvider(db DBTX) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(db),
		JournalRepo: newPgxJournalRepository(db),
		LedgerRepo:  newPgxLedgerRepository(db),
	}
}

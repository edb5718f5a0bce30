package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	JournalRepo JournalRepositoryFacade
	LedgerRepo  LedgerRepositoryFacade
}

// Store is a storage backend with a process-wide lifecycle: opened once at startup,
// shared by every service and closed at shutdown.
type Store interface {
	TransactionManager

	// Repositories returns repositories that operate outside any transaction.
	Repositories() RepositoryProvider

	// Close releases the backend's resources.
	Close()
}

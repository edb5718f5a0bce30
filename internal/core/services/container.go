package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(store portsrepo.Store) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Ledger and account services have no service dependencies; the journal service
	// drives both inside its posting transaction.
	container.Ledger = NewLedgerService(store)
	container.Account = NewAccountService(store)
	container.Journal = NewJournalService(store, container.Account, container.Ledger)
	container.Reporting = NewReportingService(store)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)

package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// bookkeepingSuite wires every service against one in-memory store.
type bookkeepingSuite struct {
	suite.Suite
	ctx       context.Context
	store     portsrepo.Store
	container *portssvc.ServiceContainer
}

func (s *bookkeepingSuite) SetupTest() {
	s.ctx = context.Background()
	s.useStore(memory.NewStore())
}

func (s *bookkeepingSuite) useStore(store portsrepo.Store) {
	s.store = store
	s.container = services.NewServiceContainer(store)
}

func (s *bookkeepingSuite) createAccount(code, name string, accountType domain.AccountType) *domain.Account {
	acc, err := s.container.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:        code,
		Name:        name,
		AccountType: accountType,
	}, "tester")
	s.Require().NoError(err)
	return acc
}

func (s *bookkeepingSuite) account(id string) *domain.Account {
	acc, err := s.container.Account.GetAccountByID(s.ctx, id)
	s.Require().NoError(err)
	return acc
}

// draft creates a two-line entry debiting one account and crediting another.
func (s *bookkeepingSuite) draft(date time.Time, debitID, creditID string, amt decimal.Decimal) *domain.JournalEntry {
	req, err := dto.NewJournalEntry(date, "test entry").
		Debit(debitID, amt, "").
		Credit(creditID, amt, "").
		Build()
	s.Require().NoError(err)
	entry, err := s.container.Journal.CreateJournalEntry(s.ctx, req, "tester")
	s.Require().NoError(err)
	return entry
}

func (s *bookkeepingSuite) post(date time.Time, debitID, creditID string, amt decimal.Decimal) *domain.JournalEntry {
	entry := s.draft(date, debitID, creditID, amt)
	posted, err := s.container.Journal.PostJournalEntry(s.ctx, entry.JournalEntryID, "poster")
	s.Require().NoError(err)
	return posted
}

func (s *bookkeepingSuite) ledger(filter domain.LedgerFilter) []domain.LedgerEntry {
	rows, _, err := s.container.Ledger.QueryGeneralLedger(s.ctx, filter)
	s.Require().NoError(err)
	return rows
}

func (s *bookkeepingSuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.Truef(amount(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

// faultyStore injects a storage fault into the Nth ledger insert made inside a transaction.
type faultyStore struct {
	*memory.Store
	mu          sync.Mutex
	failOnCall  int
	insertCalls int
}

func (f *faultyStore) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return f.Store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		repos.LedgerRepo = &faultyLedgerRepo{LedgerRepositoryFacade: repos.LedgerRepo, store: f}
		return fn(ctx, repos)
	})
}

type faultyLedgerRepo struct {
	portsrepo.LedgerRepositoryFacade
	store *faultyStore
}

func (r *faultyLedgerRepo) InsertLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	r.store.mu.Lock()
	r.store.insertCalls++
	fail := r.store.insertCalls == r.store.failOnCall
	r.store.mu.Unlock()
	if fail {
		return apperrors.NewAppError(500, "injected ledger insert failure", nil)
	}
	return r.LedgerRepositoryFacade.InsertLedgerEntry(ctx, entry)
}

// hidingStore makes every account invisible to locking reads once hide is set.
type hidingStore struct {
	*memory.Store
	hide bool
}

func (h *hidingStore) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return h.Store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if h.hide {
			repos.AccountRepo = hidingAccountRepo{AccountRepositoryFacade: repos.AccountRepo}
		}
		return fn(ctx, repos)
	})
}

type hidingAccountRepo struct {
	portsrepo.AccountRepositoryFacade
}

func (hidingAccountRepo) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return map[string]domain.Account{}, nil
}

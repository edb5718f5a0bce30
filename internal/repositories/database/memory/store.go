// Package memory implements the repository ports on process memory. It backs tests
// and single-process deployments that do not need durability.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

// state is everything the store holds. A write transaction works on a clone and
// the store swaps it in on success.
type state struct {
	accounts   map[string]domain.Account
	entries    map[string]domain.JournalEntry
	ledger     []domain.LedgerEntry
	journalSeq map[int]int64
	ledgerSeq  int64
}

func newState() *state {
	return &state{
		accounts:   make(map[string]domain.Account),
		entries:    make(map[string]domain.JournalEntry),
		journalSeq: make(map[int]int64),
	}
}

func (st *state) clone() *state {
	c := &state{
		accounts:   make(map[string]domain.Account, len(st.accounts)),
		entries:    make(map[string]domain.JournalEntry, len(st.entries)),
		ledger:     make([]domain.LedgerEntry, len(st.ledger)),
		journalSeq: make(map[int]int64, len(st.journalSeq)),
		ledgerSeq:  st.ledgerSeq,
	}
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	for k, v := range st.entries {
		c.entries[k] = copyEntry(v)
	}
	copy(c.ledger, st.ledger)
	for k, v := range st.journalSeq {
		c.journalSeq[k] = v
	}
	return c
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	if e.Lines != nil {
		lines := make([]domain.JournalLine, len(e.Lines))
		copy(lines, e.Lines)
		e.Lines = lines
	}
	return e
}

// view gives repositories access to a state. Outside a transaction every call takes
// the store lock; inside one the transaction already holds it.
type view interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store is an in-memory repositories.Store guarded by one coarse RWMutex.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

var _ portsrepo.Store = (*Store)(nil)

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write applies a single-call change atomically, the way an auto-committed
// statement would.
func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.state.clone()
	if err := fn(working); err != nil {
		return err
	}
	s.state = working
	return nil
}

// txView operates on a transaction's private state.
type txView struct {
	st *state
}

func (v txView) read(fn func(st *state) error) error  { return fn(v.st) }
func (v txView) write(fn func(st *state) error) error { return fn(v.st) }

func providerFor(v view) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: &accountRepository{v: v},
		JournalRepo: &journalRepository{v: v},
		LedgerRepo:  &ledgerRepository{v: v},
	}
}

// Repositories returns repositories whose calls each see a consistent snapshot.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return providerFor(s)
}

// WithinTransaction runs fn with exclusive access to a clone of the state and
// publishes the clone only if fn succeeds and ctx is still live.
func (s *Store) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, providerFor(txView{st: working})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = working
	return nil
}

// Close is a no-op; the state is released with the store.
func (s *Store) Close() {}

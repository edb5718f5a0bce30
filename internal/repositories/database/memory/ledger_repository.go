package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	v view
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func matchesLedgerFilter(e domain.LedgerEntry, filter domain.LedgerFilter, search string) bool {
	if filter.AccountID != "" && e.AccountID != filter.AccountID {
		return false
	}
	if filter.JournalEntryID != "" && e.JournalEntryID != filter.JournalEntryID {
		return false
	}
	if filter.FromDate != nil && e.EntryDate.Before(*filter.FromDate) {
		return false
	}
	if filter.ToDate != nil && e.EntryDate.After(*filter.ToDate) {
		return false
	}
	if search != "" {
		return strings.Contains(strings.ToLower(e.Description), search) ||
			strings.Contains(strings.ToLower(e.Reference), search) ||
			strings.Contains(strings.ToLower(e.AccountCode), search) ||
			strings.Contains(strings.ToLower(e.AccountName), search)
	}
	return true
}

func (r *ledgerRepository) ListLedgerEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var rows []domain.LedgerEntry
	err := r.v.read(func(st *state) error {
		rows = make([]domain.LedgerEntry, 0)
		for _, e := range st.ledger {
			if matchesLedgerFilter(e, filter, search) {
				rows = append(rows, e)
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool { return domain.CanonicalLess(rows[i], rows[j]) })
	return rows, err
}

func (r *ledgerRepository) HasLedgerEntries(ctx context.Context, accountID string) (bool, error) {
	found := false
	err := r.v.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.AccountID == accountID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *ledgerRepository) NextLedgerSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.v.write(func(st *state) error {
		st.ledgerSeq++
		seq = st.ledgerSeq
		return nil
	})
	return seq, err
}

func (r *ledgerRepository) InsertLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return r.v.write(func(st *state) error {
		st.ledger = append(st.ledger, entry)
		return nil
	})
}

func (r *ledgerRepository) UpdateRunningBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	return r.v.write(func(st *state) error {
		updated := 0
		for i := range st.ledger {
			if balance, ok := balances[st.ledger[i].LedgerEntryID]; ok {
				st.ledger[i].RunningBalance = balance
				updated++
			}
		}
		if updated != len(balances) {
			return fmt.Errorf("%w: %d of %d ledger rows not found", apperrors.ErrNotFound, len(balances)-updated, len(balances))
		}
		return nil
	})
}

package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

type journalRepository struct {
	v view
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func (r *journalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	var found domain.JournalEntry
	err := r.v.read(func(st *state) error {
		entry, ok := st.entries[journalEntryID]
		if !ok {
			return apperrors.ErrNotFound
		}
		found = copyEntry(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// FindJournalEntryByIDForUpdate is a plain lookup; the transaction already holds the store lock.
func (r *journalRepository) FindJournalEntryByIDForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.FindJournalEntryByID(ctx, journalEntryID)
}

func (r *journalRepository) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	found := false
	err := r.v.read(func(st *state) error {
		for _, entry := range st.entries {
			for _, line := range entry.Lines {
				if line.AccountID == accountID {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

func (r *journalRepository) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	err := r.v.read(func(st *state) error {
		entries = make([]domain.JournalEntry, 0, len(st.entries))
		for _, entry := range st.entries {
			if filter.Status != "" && entry.Status != filter.Status {
				continue
			}
			if filter.FromDate != nil && entry.EntryDate.Before(*filter.FromDate) {
				continue
			}
			if filter.ToDate != nil && entry.EntryDate.After(*filter.ToDate) {
				continue
			}
			entry.Lines = nil
			entries = append(entries, entry)
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryDate.Before(entries[j].EntryDate)
		}
		return entries[i].Number < entries[j].Number
	})
	return entries, err
}

func (r *journalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.v.write(func(st *state) error {
		if _, exists := st.entries[entry.JournalEntryID]; exists {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrValidation, entry.JournalEntryID)
		}
		st.entries[entry.JournalEntryID] = copyEntry(entry)
		return nil
	})
}

func (r *journalRepository) UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry) error {
	return r.v.write(func(st *state) error {
		stored, ok := st.entries[entry.JournalEntryID]
		if !ok {
			return apperrors.ErrNotFound
		}
		stored.Status = entry.Status
		stored.PostedAt = entry.PostedAt
		stored.PostedBy = entry.PostedBy
		stored.ReversedAt = entry.ReversedAt
		stored.ReversedBy = entry.ReversedBy
		stored.ReversalReason = entry.ReversalReason
		stored.ReversedByID = entry.ReversedByID
		stored.LastUpdatedAt = entry.LastUpdatedAt
		stored.LastUpdatedBy = entry.LastUpdatedBy
		st.entries[entry.JournalEntryID] = stored
		return nil
	})
}

func (r *journalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.entries[journalEntryID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(st.entries, journalEntryID)
		return nil
	})
}

func (r *journalRepository) NextJournalSequence(ctx context.Context, year int) (int64, error) {
	var seq int64
	err := r.v.write(func(st *state) error {
		st.journalSeq[year]++
		seq = st.journalSeq[year]
		return nil
	})
	return seq, err
}

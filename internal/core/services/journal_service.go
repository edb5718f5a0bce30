package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/utils/accounting"
)

// journalService owns journal entry validation and the DRAFT -> POSTED -> REVERSED lifecycle.
type journalService struct {
	BaseService
	store    portsrepo.Store
	accounts portssvc.AccountPostingSvc
	ledger   portssvc.LedgerWriterSvc
	now      func() time.Time
}

// NewJournalService creates a new JournalService.
func NewJournalService(store portsrepo.Store, accounts portssvc.AccountPostingSvc, ledger portssvc.LedgerWriterSvc) portssvc.JournalSvcFacade {
	return &journalService{
		store:    store,
		accounts: accounts,
		ledger:   ledger,
		now:      time.Now,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateRequest applies the structural rules that need no storage access.
func validateRequest(req dto.CreateJournalEntryRequest) error {
	if len(req.Lines) < 2 {
		return fmt.Errorf("%w: a journal entry needs at least two lines", apperrors.ErrInvalidLine)
	}
	for i, l := range req.Lines {
		line := domain.JournalLine{LineNumber: i + 1, Debit: l.Debit, Credit: l.Credit}
		if err := line.Validate(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidLine, err)
		}
		if strings.TrimSpace(l.AccountID) == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrUnknownAccount, i+1)
		}
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	return req.Validate()
}

// CreateJournalEntry stores a validated DRAFT entry and allocates its number.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		EntryDate:      domain.DateOnly(req.Date),
		Description:    strings.TrimSpace(req.Description),
		Reference:      req.Reference,
		Status:         domain.Draft,
		Lines:          make([]domain.JournalLine, len(req.Lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	for i, l := range req.Lines {
		entry.Lines[i] = domain.JournalLine{
			LineID:         uuid.NewString(),
			JournalEntryID: entry.JournalEntryID,
			LineNumber:     i + 1,
			AccountID:      l.AccountID,
			Description:    l.Description,
			Reference:      l.Reference,
			Debit:          l.Debit,
			Credit:         l.Credit,
		}
	}
	entry.TotalDebit, entry.TotalCredit = accounting.SumLines(entry.Lines)

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		ids := make([]string, len(entry.Lines))
		for i, l := range entry.Lines {
			ids[i] = l.AccountID
		}
		accounts, err := repos.AccountRepo.FindAccountsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to resolve accounts: %w", err)
		}
		for i := range entry.Lines {
			acc, ok := accounts[entry.Lines[i].AccountID]
			if !ok {
				return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, entry.Lines[i].AccountID)
			}
			if !acc.IsActive {
				return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
			}
			entry.Lines[i].AccountCode = acc.Code
			entry.Lines[i].AccountName = acc.Name
		}

		if !accounting.IsBalanced(entry.TotalDebit, entry.TotalCredit) {
			return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced,
				entry.TotalDebit.String(), entry.TotalCredit.String())
		}

		seq, err := repos.JournalRepo.NextJournalSequence(ctx, entry.EntryDate.Year())
		if err != nil {
			return fmt.Errorf("failed to allocate journal number: %w", err)
		}
		entry.Number = domain.FormatJournalNumber(entry.EntryDate.Year(), seq)

		return repos.JournalRepo.SaveJournalEntry(ctx, entry)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create journal entry")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("number", entry.Number))
	return &entry, nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.store.Repositories().JournalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	entries, err := s.store.Repositories().JournalRepo.ListJournalEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// PostJournalEntry posts a DRAFT entry. The status change, the ledger rows and the
// account balances commit together or not at all.
func (s *journalService) PostJournalEntry(ctx context.Context, journalEntryID string, actor string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		entry, err := repos.JournalRepo.FindJournalEntryByIDForUpdate(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidStatus, entry.Number, entry.Status)
		}

		now := s.now().UTC()
		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.PostedBy = actor
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actor

		if err := s.project(ctx, repos, entry, actor); err != nil {
			return err
		}
		if err := repos.JournalRepo.UpdateJournalEntryStatus(ctx, *entry); err != nil {
			return err
		}

		posted = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrState) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_entry_id", posted.JournalEntryID),
		slog.String("number", posted.Number))
	return posted, nil
}

// project applies the entry's lines to account balances and appends its ledger rows.
// Balances go first so account locks are held before the account ledgers are read.
func (s *journalService) project(ctx context.Context, repos portsrepo.RepositoryProvider, entry *domain.JournalEntry, actor string) error {
	if err := s.accounts.ApplyPostings(ctx, repos, entry.Lines, actor); err != nil {
		return err
	}
	_, err := s.ledger.AppendEntry(ctx, repos, entry)
	return err
}

// ReverseJournalEntry posts an offsetting entry for a POSTED entry and marks the
// original REVERSED. Both changes commit together.
func (s *journalService) ReverseJournalEntry(ctx context.Context, journalEntryID string, reason string, actor string) (*domain.JournalEntry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	var reversal domain.JournalEntry

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		original, err := repos.JournalRepo.FindJournalEntryByIDForUpdate(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if original.Status != domain.Posted {
			return fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidStatus, original.Number, original.Status)
		}
		if original.IsReversal() {
			return fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrInvalidStatus, original.Number)
		}

		now := s.now().UTC()
		reversal = domain.JournalEntry{
			JournalEntryID: uuid.NewString(),
			EntryDate:      original.EntryDate,
			Description:    fmt.Sprintf("Reversal of %s: %s", original.Number, original.Description),
			Reference:      original.Reference,
			Status:         domain.Posted,
			TotalDebit:     original.TotalCredit,
			TotalCredit:    original.TotalDebit,
			Lines:          make([]domain.JournalLine, len(original.Lines)),
			PostedAt:       &now,
			PostedBy:       actor,
			ReversalOfID:   original.JournalEntryID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
		for i, l := range original.Lines {
			reversal.Lines[i] = domain.JournalLine{
				LineID:         uuid.NewString(),
				JournalEntryID: reversal.JournalEntryID,
				LineNumber:     l.LineNumber,
				AccountID:      l.AccountID,
				AccountCode:    l.AccountCode,
				AccountName:    l.AccountName,
				Description:    l.Description,
				Reference:      l.Reference,
				Debit:          l.Credit,
				Credit:         l.Debit,
			}
		}

		seq, err := repos.JournalRepo.NextJournalSequence(ctx, reversal.EntryDate.Year())
		if err != nil {
			return fmt.Errorf("failed to allocate journal number: %w", err)
		}
		reversal.Number = domain.FormatJournalNumber(reversal.EntryDate.Year(), seq)

		if err := repos.JournalRepo.SaveJournalEntry(ctx, reversal); err != nil {
			return err
		}
		if err := s.project(ctx, repos, &reversal, actor); err != nil {
			return err
		}

		original.Status = domain.Reversed
		original.ReversedAt = &now
		original.ReversedBy = actor
		original.ReversalReason = reason
		original.ReversedByID = reversal.JournalEntryID
		original.LastUpdatedAt = now
		original.LastUpdatedBy = actor
		return repos.JournalRepo.UpdateJournalEntryStatus(ctx, *original)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrState) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("reversal_id", reversal.JournalEntryID),
		slog.String("reversal_number", reversal.Number))
	return &reversal, nil
}

// DeleteJournalEntry removes a DRAFT entry.
func (s *journalService) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		entry, err := repos.JournalRepo.FindJournalEntryByIDForUpdate(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidStatus, entry.Number, entry.Status)
		}
		return repos.JournalRepo.DeleteJournalEntry(ctx, journalEntryID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrState) {
			s.LogError(ctx, err, "Failed to delete journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("journal_entry_id", journalEntryID))
	return nil
}

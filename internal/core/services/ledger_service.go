package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService projects posted journal lines into general-ledger rows.
type ledgerService struct {
	BaseService
	store portsrepo.Store
	now   func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store portsrepo.Store) portssvc.LedgerSvcFacade {
	return &ledgerService{store: store, now: time.Now}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) AppendEntry(ctx context.Context, repos portsrepo.RepositoryProvider, entry *domain.JournalEntry) ([]domain.LedgerEntry, error) {
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: only posted entries reach the ledger", apperrors.ErrInvalidStatus)
	}

	ids := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		ids = append(ids, line.AccountID)
	}
	accounts, err := repos.AccountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for ledger: %w", err)
	}

	now := s.now().UTC()
	rows := make([]domain.LedgerEntry, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, line.AccountID)
		}

		description := line.Description
		if description == "" {
			description = entry.Description
		}
		reference := line.Reference
		if reference == "" {
			reference = entry.Reference
		}

		row := domain.LedgerEntry{
			LedgerEntryID:  uuid.NewString(),
			AccountID:      acc.AccountID,
			AccountCode:    acc.Code,
			AccountName:    acc.Name,
			JournalEntryID: entry.JournalEntryID,
			JournalNumber:  entry.Number,
			LineID:         line.LineID,
			EntryDate:      entry.EntryDate,
			Description:    description,
			Reference:      reference,
			Debit:          line.Debit,
			Credit:         line.Credit,
			CreatedAt:      now,
		}

		row, err = s.appendRow(ctx, repos, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	s.LogDebug(ctx, "Ledger rows appended",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.Int("count", len(rows)))
	return rows, nil
}

// appendRow assigns the next sequence, derives the running balance from the row's
// predecessor in canonical order and re-derives the balances of any rows after it.
func (s *ledgerService) appendRow(ctx context.Context, repos portsrepo.RepositoryProvider, row domain.LedgerEntry) (domain.LedgerEntry, error) {
	seq, err := repos.LedgerRepo.NextLedgerSequence(ctx)
	if err != nil {
		return row, fmt.Errorf("failed to allocate ledger sequence: %w", err)
	}
	row.Sequence = seq

	existing, err := repos.LedgerRepo.ListLedgerEntries(ctx, domain.LedgerFilter{AccountID: row.AccountID})
	if err != nil {
		return row, fmt.Errorf("failed to read account ledger: %w", err)
	}

	pos := sort.Search(len(existing), func(i int) bool {
		return domain.CanonicalLess(row, existing[i])
	})

	running := decimal.Zero
	if pos > 0 {
		running = existing[pos-1].RunningBalance
	}
	running = running.Add(row.Debit).Sub(row.Credit)
	row.RunningBalance = running

	if err := repos.LedgerRepo.InsertLedgerEntry(ctx, row); err != nil {
		return row, fmt.Errorf("failed to insert ledger row: %w", err)
	}

	// Back-dated row: later rows shift by this row's amount.
	if pos < len(existing) {
		balances := make(map[string]decimal.Decimal, len(existing)-pos)
		for _, later := range existing[pos:] {
			running = running.Add(later.Debit).Sub(later.Credit)
			balances[later.LedgerEntryID] = running
		}
		if err := repos.LedgerRepo.UpdateRunningBalances(ctx, balances); err != nil {
			return row, fmt.Errorf("failed to re-derive running balances: %w", err)
		}
	}

	return row, nil
}

func (s *ledgerService) QueryGeneralLedger(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error) {
	if filter.Limit < 0 {
		return nil, nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrValidation)
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, nil, fmt.Errorf("%w: fromDate must be before or equal to toDate", apperrors.ErrValidation)
	}

	rows, err := s.store.Repositories().LedgerRepo.ListLedgerEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query general ledger")
		return nil, nil, fmt.Errorf("failed to query general ledger: %w", err)
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeLedgerToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after := domain.LedgerEntry{EntryDate: cursor.EntryDate, AccountCode: cursor.AccountCode, Sequence: cursor.Sequence}
		start := sort.Search(len(rows), func(i int) bool {
			return domain.CanonicalLess(after, rows[i])
		})
		rows = rows[start:]
	}

	var nextToken *string
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
		last := rows[len(rows)-1]
		token := pagination.EncodeLedgerToken(pagination.LedgerCursor{
			EntryDate:   last.EntryDate,
			AccountCode: last.AccountCode,
			Sequence:    last.Sequence,
		})
		nextToken = &token
	}

	if rows == nil {
		rows = []domain.LedgerEntry{}
	}
	return rows, nextToken, nil
}

func (s *ledgerService) HasActivity(ctx context.Context, accountID string) (bool, error) {
	active, err := s.store.Repositories().LedgerRepo.HasLedgerEntries(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check ledger activity", slog.String("account_id", accountID))
		}
		return false, err
	}
	return active, nil
}

package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/models"
	"github.com/SscSPs/bookkeeping_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const journalColumns = `journal_entry_id, number, entry_date, description, reference, status, total_debit, total_credit,
	posted_at, posted_by, reversed_at, reversed_by, reversal_reason, reversal_of_id, reversed_by_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, journal_entry_id, line_number, account_id, account_code, account_name,
	description, reference, debit, credit`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(db DBTX) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.Number,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedAt,
		&m.PostedBy,
		&m.ReversedAt,
		&m.ReversedBy,
		&m.ReversalReason,
		&m.ReversalOfID,
		&m.ReversedByID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, query string, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := scanJournalEntry(r.DB.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fault("failed to find journal entry "+journalEntryID, err)
	}

	lines, err := r.findLines(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_entry_id = $1 ORDER BY line_number;`
	rows, err := r.DB.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fault("failed to query lines for journal entry "+journalEntryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.JournalEntryID,
			&m.LineNumber,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.Description,
			&m.Reference,
			&m.Debit,
			&m.Credit,
		)
		if err != nil {
			return nil, fault("failed to scan journal line row", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fault("error iterating journal line rows", err)
	}
	return lines, nil
}

// FindJournalEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE journal_entry_id = $1;`, journalEntryID)
}

// FindJournalEntryByIDForUpdate retrieves a journal entry with its lines and locks the entry row.
func (r *PgxJournalRepository) FindJournalEntryByIDForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE journal_entry_id = $1 FOR UPDATE;`, journalEntryID)
}

// ListJournalEntries retrieves journal entries without lines, ordered by date then number.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	var conditions []string
	var args []any
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		conditions = append(conditions, "entry_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		conditions = append(conditions, "entry_date <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + journalColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date, number;"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fault("failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fault("failed to scan journal entry row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fault("error iterating journal entry rows", err)
	}
	return entries, nil
}

// SaveJournalEntry inserts the entry and its lines in one batch.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`,
		m.JournalEntryID,
		m.Number,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.PostedAt,
		m.PostedBy,
		m.ReversedAt,
		m.ReversedBy,
		m.ReversalReason,
		m.ReversalOfID,
		m.ReversedByID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	lineQuery := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	for _, line := range entry.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			l.LineID,
			l.JournalEntryID,
			l.LineNumber,
			l.AccountID,
			l.AccountCode,
			l.AccountName,
			l.Description,
			l.Reference,
			l.Debit,
			l.Credit,
		)
	}

	// Close the batch results to check for errors in each command
	if err := r.DB.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrUnknownAccount
		}
		return fault("failed to insert journal entry "+m.JournalEntryID, err)
	}
	return nil
}

// UpdateJournalEntryStatus persists the lifecycle columns of an entry.
func (r *PgxJournalRepository) UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, posted_by = $4, reversed_at = $5, reversed_by = $6,
		    reversal_reason = $7, reversed_by_id = $8, last_updated_at = $9, last_updated_by = $10
		WHERE journal_entry_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.JournalEntryID,
		m.Status,
		m.PostedAt,
		m.PostedBy,
		m.ReversedAt,
		m.ReversedBy,
		m.ReversalReason,
		m.ReversedByID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fault("failed to update journal entry "+m.JournalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteJournalEntry removes an entry; its lines go with it through ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM journal_entries WHERE journal_entry_id = $1;`, journalEntryID)
	if err != nil {
		return fault("failed to delete journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasLinesForAccount reports whether any journal line references the account.
func (r *PgxJournalRepository) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, fault("failed to check journal lines for account "+accountID, err)
	}
	return exists, nil
}

// NextJournalSequence increments the per-year counter. The upsert locks the year's row
// until the surrounding transaction ends, so numbers are gapless among committed entries.
func (r *PgxJournalRepository) NextJournalSequence(ctx context.Context, year int) (int64, error) {
	query := `
		INSERT INTO journal_sequences (year, last_value) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := r.DB.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return 0, fault("failed to allocate journal sequence", err)
	}
	return seq, nil
}

package pgsql

import (
	"context"
	"strconv"
	"strings"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/models"
	"github.com/SscSPs/bookkeeping_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerAppendLockKey is the advisory lock key that serializes ledger appends.
const ledgerAppendLockKey int64 = 0x6c6564676572

const ledgerColumns = `ledger_entry_id, account_id, account_code, account_name, journal_entry_id, journal_number,
	line_id, entry_date, description, reference, debit, credit, running_balance, sequence, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for general-ledger rows.
func newPgxLedgerRepository(db DBTX) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ledgerQuery builds the SELECT for a filter. Rows come back in the same canonical
// order as domain.CanonicalLess.
func ledgerQuery(filter domain.LedgerFilter) (string, []any) {
	var conditions []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.AccountID != "" {
		conditions = append(conditions, "account_id = "+next(filter.AccountID))
	}
	if filter.JournalEntryID != "" {
		conditions = append(conditions, "journal_entry_id = "+next(filter.JournalEntryID))
	}
	if filter.FromDate != nil {
		conditions = append(conditions, "entry_date >= "+next(*filter.FromDate))
	}
	if filter.ToDate != nil {
		conditions = append(conditions, "entry_date <= "+next(*filter.ToDate))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		p := next("%" + escapeLike(search) + "%")
		conditions = append(conditions, "(description ILIKE "+p+" OR reference ILIKE "+p+
			" OR account_code ILIKE "+p+" OR account_name ILIKE "+p+")")
	}

	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date, account_code, sequence;"
	return query, args
}

// ListLedgerEntries returns matching rows in canonical order.
func (r *PgxLedgerRepository) ListLedgerEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	query, args := ledgerQuery(filter)
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fault("failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.LedgerEntryID,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.JournalEntryID,
			&m.JournalNumber,
			&m.LineID,
			&m.EntryDate,
			&m.Description,
			&m.Reference,
			&m.Debit,
			&m.Credit,
			&m.RunningBalance,
			&m.Sequence,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fault("failed to scan ledger row", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fault("error iterating ledger rows", err)
	}
	return entries, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// HasLedgerEntries reports whether any row references the account.
func (r *PgxLedgerRepository) HasLedgerEntries(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, fault("failed to check ledger activity for account "+accountID, err)
	}
	return exists, nil
}

// NextLedgerSequence takes the transaction-scoped append lock, then draws from the
// ledger sequence. Outside a transaction the lock is released at statement end.
func (r *PgxLedgerRepository) NextLedgerSequence(ctx context.Context) (int64, error) {
	if _, err := r.DB.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, ledgerAppendLockKey); err != nil {
		return 0, fault("failed to acquire ledger append lock", err)
	}
	var seq int64
	if err := r.DB.QueryRow(ctx, `SELECT nextval('ledger_entry_sequence');`).Scan(&seq); err != nil {
		return 0, fault("failed to allocate ledger sequence", err)
	}
	return seq, nil
}

// InsertLedgerEntry appends a row.
func (r *PgxLedgerRepository) InsertLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.DB.Exec(ctx, query,
		m.LedgerEntryID,
		m.AccountID,
		m.AccountCode,
		m.AccountName,
		m.JournalEntryID,
		m.JournalNumber,
		m.LineID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Debit,
		m.Credit,
		m.RunningBalance,
		m.Sequence,
		m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrUnknownAccount
		}
		return fault("failed to insert ledger row "+m.LedgerEntryID, err)
	}
	return nil
}

// UpdateRunningBalances rewrites running balances in one batch.
func (r *PgxLedgerRepository) UpdateRunningBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	if len(balances) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	ids := make([]string, 0, len(balances))
	for id, balance := range balances {
		batch.Queue(`UPDATE ledger_entries SET running_balance = $2 WHERE ledger_entry_id = $1;`, id, balance)
		ids = append(ids, id)
	}

	br := r.DB.SendBatch(ctx, batch)
	defer br.Close()
	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return fault("failed to update running balance of ledger row "+id, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

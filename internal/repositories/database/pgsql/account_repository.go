package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/models"
	"github.com/SscSPs/bookkeeping_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, code, name, description, account_type, parent_account_id, level, is_active,
	balance, debit_total, credit_total, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(db DBTX) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.AccountType,
		&m.ParentAccountID,
		&m.Level,
		&m.IsActive,
		&m.Balance,
		&m.DebitTotal,
		&m.CreditTotal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	acc, err := scanAccount(r.DB.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fault("failed to find account", err)
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID)
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1;`, code)
}

func (r *PgxAccountRepository) findMany(ctx context.Context, query string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	rows, err := r.DB.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fault("failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fault("failed to scan account row", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fault("error iterating account rows", err)
	}
	return accountsMap, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.findMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1);`, accountIDs)
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Rows are locked in account_id order so concurrent posters cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.findMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`, accountIDs)
}

// ListAccounts retrieves accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var conditions []string
	var args []any
	if filter.AccountType != "" {
		args = append(args, string(filter.AccountType))
		conditions = append(conditions, "account_type = $"+strconv.Itoa(len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY code;"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fault("failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fault("failed to scan account row", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fault("error iterating account rows", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.DB.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Description,
		m.AccountType,
		m.ParentAccountID,
		m.Level,
		m.IsActive,
		m.Balance,
		m.DebitTotal,
		m.CreditTotal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, m.Code)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: parent %s", apperrors.ErrUnknownAccount, account.ParentAccountID)
		}
		return fault("failed to save account "+m.AccountID, err)
	}
	return nil
}

// UpdateAccount updates the descriptive and hierarchy fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $2, name = $3, description = $4, parent_account_id = $5, level = $6, is_active = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Description,
		m.ParentAccountID,
		m.Level,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, m.Code)
		}
		return fault("failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: account %s is still referenced", apperrors.ErrIntegrity, accountID)
		}
		return fault("failed to delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalances writes balance and accumulator columns in one batch.
func (r *PgxAccountRepository) UpdateAccountBalances(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = $2, debit_total = $3, credit_total = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		batch.Queue(query, acc.AccountID, acc.Balance, acc.DebitTotal, acc.CreditTotal, acc.LastUpdatedAt, acc.LastUpdatedBy)
	}

	br := r.DB.SendBatch(ctx, batch)
	defer br.Close()
	for _, acc := range accounts {
		tag, err := br.Exec()
		if err != nil {
			return fault("failed to update balance of account "+acc.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, acc.AccountID)
		}
	}
	return nil
}

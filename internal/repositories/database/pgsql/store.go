package pgsql

import (
	"context"
	"errors"
	"log/slog"

	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a repositories.Store backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an open pool. The store owns the pool and closes it in Close.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ portsrepo.Store = (*Store)(nil)

// Repositories returns repositories that run each statement on the pool.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return NewRepositoryProvider(s.pool)
}

// WithinTransaction runs fn inside a READ COMMITTED transaction and commits if fn
// succeeds. Row locks taken by the ForUpdate finders are held until commit.
func (s *Store) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fault("failed to begin transaction", err)
	}
	// Will be ignored if transaction is committed successfully
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(ctx, NewRepositoryProvider(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fault("failed to commit transaction", err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

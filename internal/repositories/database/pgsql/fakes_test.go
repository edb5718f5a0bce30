package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recordedCall struct {
	sql  string
	args []any
}

// fakeDB records statements and answers them with canned results.
type fakeDB struct {
	calls        []recordedCall
	batches      []*pgx.Batch
	execErr      error
	rowsAffected int64
	rowValues    []any
}

var _ DBTX = (*fakeDB)(nil)

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, recordedCall{sql: sql, args: args})
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", f.rowsAffected)), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, recordedCall{sql: sql, args: args})
	return nil, errors.New("query not supported by fakeDB")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, recordedCall{sql: sql, args: args})
	if len(f.rowValues) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	value := f.rowValues[0]
	f.rowValues = f.rowValues[1:]
	return fakeRow{value: value}
}

func (f *fakeDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batches = append(f.batches, b)
	return &fakeBatchResults{db: f}
}

type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *bool:
		*d = r.value.(bool)
	case *int64:
		*d = r.value.(int64)
	default:
		return fmt.Errorf("fakeRow cannot scan into %T", dest[0])
	}
	return nil
}

type fakeBatchResults struct {
	db *fakeDB
}

func (b *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	if b.db.execErr != nil {
		return pgconn.CommandTag{}, b.db.execErr
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", b.db.rowsAffected)), nil
}

func (b *fakeBatchResults) Query() (pgx.Rows, error) {
	return nil, errors.New("query not supported by fakeBatchResults")
}

func (b *fakeBatchResults) QueryRow() pgx.Row {
	return fakeRow{err: pgx.ErrNoRows}
}

func (b *fakeBatchResults) Close() error { return nil }

package repositories

import (
	"context"
)

// TxFunc runs against repositories bound to one transaction.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTransaction runs fn in a single atomic unit. If fn returns an error, or the
	// commit fails, nothing fn wrote is visible to any reader.
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

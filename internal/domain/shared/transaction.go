package shared

import "context"

// TransactionManager runs a function inside a persistence transaction.
// Repositories called with the context passed to fn participate in the same
// transaction, so a lease status change and its occupancy/invoice side effects
// commit or roll back as one unit.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactionManager executes the function without a transaction.
// Used in tests where repositories are mocked.
type NoopTransactionManager struct{}

// WithinTransaction invokes fn directly
func (NoopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

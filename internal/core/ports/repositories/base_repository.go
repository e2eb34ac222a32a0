package repositories

import "context"

// TransactionManager runs a unit of work in a single database transaction.
// Repository calls made with the context passed to fn join that transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

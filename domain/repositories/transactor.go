package repositories

import "context"

// Transactor runs fn inside one unit of work. Repository calls made with the
// ctx passed to fn join that unit; it commits when fn returns nil and rolls
// back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

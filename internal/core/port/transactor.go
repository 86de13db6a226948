package port

import "context"

// Transactor runs fn as a single unit of work. Repositories called with the
// context passed to fn take part in the same transaction. If fn returns an
// error every write made inside it is rolled back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

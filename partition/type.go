package partition

import "context"

// Target is one (database, table) pair in the fleet. The database list and
// table list are independent axes; a run covers their full cross product.
type Target struct {
	Database string
	Table    string
}

func (t Target) String() string {
	return t.Database + "." + t.Table
}

type OutcomeKind string

const (
	OutcomeAdded         OutcomeKind = "added"
	OutcomeDeleted       OutcomeKind = "deleted"
	OutcomeAlreadyExists OutcomeKind = "already_exists"
	OutcomeDoesNotExist  OutcomeKind = "does_not_exist"
	OutcomeError         OutcomeKind = "error"
)

// Kinds lists the report sections in delivery order. Errors go out first;
// they are the primary diagnostic surface of a run.
var Kinds = []OutcomeKind{OutcomeError, OutcomeAdded, OutcomeDeleted, OutcomeDoesNotExist, OutcomeAlreadyExists}

// Oracle answers whether a named partition exists on a target.
type Oracle interface {
	Exists(ctx context.Context, target Target, identifier string) (bool, error)
}

// Mutator issues the partition DDL for a single target. Both operations are
// non-transactional, immediately committing schema changes; earlier
// successful mutations stand if a later triple fails.
type Mutator interface {
	AddPartition(ctx context.Context, target Target, identifier string, boundaryMillis int64) error
	DropPartition(ctx context.Context, target Target, identifier string) error
}

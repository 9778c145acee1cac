package partition

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const partitionExistsQuery = `
	SELECT EXISTS (
		SELECT 1 FROM information_schema.partitions
		WHERE table_schema = ? AND table_name = ? AND partition_name = ?
	)
	`

// catalogOracle answers existence checks with a single read of the engine
// catalog. Matching is exact equality on (schema, table, partition name).
type catalogOracle struct {
	db *sqlx.DB
}

func NewOracle(db *sqlx.DB) Oracle {
	return &catalogOracle{db: db}
}

func (o *catalogOracle) Exists(ctx context.Context, target Target, identifier string) (bool, error) {
	var exists bool

	err := o.db.QueryRowxContext(ctx, partitionExistsQuery, target.Database, target.Table, identifier).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check partition %s on %s: %v", identifier, target, err)
	}

	return exists, nil
}

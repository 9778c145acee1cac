package partition

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

// MySQL takes no placeholders in DDL, so names are validated before they
// are interpolated into a statement.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_$]+$`)

type ddlMutator struct {
	db *sqlx.DB
}

func NewMutator(db *sqlx.DB) Mutator {
	return &ddlMutator{db: db}
}

func (m *ddlMutator) AddPartition(ctx context.Context, target Target, identifier string, boundaryMillis int64) error {
	if err := validateNames(target, identifier); err != nil {
		return err
	}

	ddl := fmt.Sprintf("ALTER TABLE %s.%s ADD PARTITION (PARTITION %s VALUES LESS THAN (%d))",
		target.Database, target.Table, identifier, boundaryMillis)

	if _, err := m.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to add partition %s on %s: %v", identifier, target, err)
	}

	return nil
}

func (m *ddlMutator) DropPartition(ctx context.Context, target Target, identifier string) error {
	if err := validateNames(target, identifier); err != nil {
		return err
	}

	ddl := fmt.Sprintf("ALTER TABLE %s.%s DROP PARTITION %s", target.Database, target.Table, identifier)

	if _, err := m.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to drop partition %s on %s: %v", identifier, target, err)
	}

	return nil
}

func validateNames(target Target, identifier string) error {
	for _, name := range []string{target.Database, target.Table, identifier} {
		if !namePattern.MatchString(name) {
			return fmt.Errorf("unsafe name '%s' in DDL for %s", name, target)
		}
	}

	return nil
}

package partition

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/frain-dev/partrotate/internal/pkg/metrics"
)

// Report accumulates per-triple outcomes for a single maintenance run.
// Recording is safe under concurrent producers; lines within a section keep
// arrival order and are never deduplicated across targets. A report is
// rendered and delivered once at run end, then discarded - the system keeps
// no history beyond the current run.
type Report struct {
	RunID string

	mu       sync.Mutex
	sections map[OutcomeKind][]string
}

func NewReport() *Report {
	return &Report{
		RunID:    ulid.Make().String(),
		sections: make(map[OutcomeKind][]string),
	}
}

func (r *Report) RecordAdded(target Target, identifier string) {
	r.append(OutcomeAdded, fmt.Sprintf("Added partition %s for table %s.", identifier, target))
}

func (r *Report) RecordDeleted(target Target, identifier string) {
	r.append(OutcomeDeleted, fmt.Sprintf("Deleted partition %s for table %s.", identifier, target))
}

func (r *Report) RecordAlreadyExists(target Target, identifier string) {
	r.append(OutcomeAlreadyExists, fmt.Sprintf("Partition %s already exists for table %s, skipping addition", identifier, target))
}

func (r *Report) RecordDoesNotExist(target Target, identifier string) {
	r.append(OutcomeDoesNotExist, fmt.Sprintf("Partition %s does not exist for table %s, skipping deletion", identifier, target))
}

func (r *Report) RecordError(target Target, identifier string, err error) {
	r.append(OutcomeError, fmt.Sprintf("Error for partition %s on table %s: %v", identifier, target, err))
}

func (r *Report) append(kind OutcomeKind, line string) {
	metrics.RecordOutcome(string(kind))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections[kind] = append(r.sections[kind], line)
}

// Render joins the section's lines with newlines. An empty section renders
// as "", which senders treat as "do not send".
func (r *Report) Render(kind OutcomeKind) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return strings.Join(r.sections[kind], "\n")
}

func (r *Report) Len(kind OutcomeKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sections[kind])
}

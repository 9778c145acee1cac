package partition

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frain-dev/partrotate/config"
	"github.com/frain-dev/partrotate/database"
	"github.com/frain-dev/partrotate/internal/pkg/metrics"
	"github.com/frain-dev/partrotate/pkg/log"
)

// Manager drives one maintenance run over the full
// (offset x database x table) cross product. A failing triple is recorded
// on the report and never halts the batch; only session and configuration
// faults abort a run before it starts.
type Manager struct {
	oracle  Oracle
	mutator Mutator
	logger  log.StdLogger

	window     config.WindowConfiguration
	databases  []string
	tables     []string
	location   *time.Location
	opTimeout  time.Duration
	maxWorkers int
}

func NewManager(db database.Database, cfg config.Configuration, logger log.StdLogger) (*Manager, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone '%s': %v", cfg.Timezone, err)
	}

	dbx := db.GetDB()

	return &Manager{
		oracle:     NewOracle(dbx),
		mutator:    NewMutator(dbx),
		logger:     logger,
		window:     cfg.Window,
		databases:  cfg.Database.Databases,
		tables:     cfg.Database.Tables,
		location:   loc,
		opTimeout:  time.Duration(cfg.Database.OpTimeoutSeconds) * time.Second,
		maxWorkers: cfg.Database.MaxWorkers,
	}, nil
}

// Maintain performs one run. The reference instant is sampled once here and
// held constant for every offset, so a run never observes clock drift
// mid-batch.
func (m *Manager) Maintain(ctx context.Context) (*Report, error) {
	return m.maintainAt(ctx, time.Now().In(m.location))
}

func (m *Manager) maintainAt(ctx context.Context, now time.Time) (*Report, error) {
	metrics.RecordRun()

	window := NewWindow(now, m.location, m.window)
	report := NewReport()

	m.logger.WithFields(log.Fields{
		"run_id":    report.RunID,
		"databases": len(m.databases),
		"tables":    len(m.tables),
		"steps":     m.window.StepCount,
	}).Info("starting partition maintenance run")

	workers := m.maxWorkers
	if workers < 1 || workers > len(m.databases) {
		workers = len(m.databases)
	}

	// A database is owned by exactly one worker at a time, so all triples
	// for a target stay sequential relative to each other.
	jobs := make(chan string)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for db := range jobs {
				m.maintainDatabase(ctx, window, db, report)
			}
		}()
	}

	for _, db := range m.databases {
		jobs <- db
	}
	close(jobs)
	wg.Wait()

	m.logger.WithFields(log.Fields{
		"run_id":         report.RunID,
		"added":          report.Len(OutcomeAdded),
		"deleted":        report.Len(OutcomeDeleted),
		"already_exists": report.Len(OutcomeAlreadyExists),
		"does_not_exist": report.Len(OutcomeDoesNotExist),
		"errors":         report.Len(OutcomeError),
	}).Info("partition maintenance run finished")

	return report, ctx.Err()
}

// maintainDatabase runs every offset for one database: all retirements
// first, then all creations, tables innermost.
func (m *Manager) maintainDatabase(ctx context.Context, window *Window, db string, report *Report) {
	for i := 0; i < window.StepCount(); i++ {
		boundary := window.RetireBoundary(i)
		for _, table := range m.tables {
			if ctx.Err() != nil {
				return
			}
			m.retire(ctx, Target{Database: db, Table: table}, boundary, report)
		}
	}

	for i := 0; i < window.StepCount(); i++ {
		boundary := window.CreateBoundary(i)
		for _, table := range m.tables {
			if ctx.Err() != nil {
				return
			}
			m.create(ctx, Target{Database: db, Table: table}, boundary, report)
		}
	}
}

// retire drops the partition at boundary if it exists. An absent partition
// is the steady state once retirement happened in a prior run, not an
// error.
func (m *Manager) retire(ctx context.Context, target Target, boundary Boundary, report *Report) {
	identifier := boundary.Identifier()

	exists, err := m.exists(ctx, target, identifier)
	if err != nil {
		report.RecordError(target, identifier, err)
		return
	}

	if !exists {
		report.RecordDoesNotExist(target, identifier)
		return
	}

	opCtx, cancel := m.opContext(ctx)
	defer cancel()

	if err := m.mutator.DropPartition(opCtx, target, identifier); err != nil {
		report.RecordError(target, identifier, err)
		return
	}

	report.RecordDeleted(target, identifier)
}

// create adds the partition at boundary unless it already exists, so
// re-running on the same day is a no-op.
func (m *Manager) create(ctx context.Context, target Target, boundary Boundary, report *Report) {
	identifier := boundary.Identifier()

	exists, err := m.exists(ctx, target, identifier)
	if err != nil {
		report.RecordError(target, identifier, err)
		return
	}

	if exists {
		report.RecordAlreadyExists(target, identifier)
		return
	}

	opCtx, cancel := m.opContext(ctx)
	defer cancel()

	if err := m.mutator.AddPartition(opCtx, target, identifier, boundary.UnixMilli()); err != nil {
		report.RecordError(target, identifier, err)
		return
	}

	report.RecordAdded(target, identifier)
}

func (m *Manager) exists(ctx context.Context, target Target, identifier string) (bool, error) {
	opCtx, cancel := m.opContext(ctx)
	defer cancel()

	return m.oracle.Exists(opCtx, target, identifier)
}

// opContext puts a deadline on every catalog read and DDL statement;
// partition drops can otherwise block on table locks indefinitely.
func (m *Manager) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, m.opTimeout)
}

package worker

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"

	"github.com/frain-dev/partrotate/pkg/log"
)

// Scheduler fires maintenance jobs on a cron schedule. Jobs run in-process;
// each firing is tagged with a fresh job id.
type Scheduler struct {
	log    log.StdLogger
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(log log.StdLogger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		log:    log,
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// RegisterJob schedules fn with the given cron spec.
func (s *Scheduler) RegisterJob(cronSpec, name string, fn func(ctx context.Context, jobID string)) error {
	_, err := s.cron.AddFunc(cronSpec, func() {
		jobID := ulid.Make().String()

		s.log.WithFields(log.Fields{"job": name, "job_id": jobID}).Info("job fired")
		fn(s.ctx, jobID)
	})

	return err
}

func (s *Scheduler) Stop() {
	s.cancel()

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.log.Info("Scheduler stopped")
}

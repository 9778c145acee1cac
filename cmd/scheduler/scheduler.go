package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/frain-dev/partrotate/cmd/run"
	"github.com/frain-dev/partrotate/config"
	"github.com/frain-dev/partrotate/internal/pkg/cli"
	"github.com/frain-dev/partrotate/internal/pkg/metrics"
	"github.com/frain-dev/partrotate/partition"
	"github.com/frain-dev/partrotate/pkg/log"
	"github.com/frain-dev/partrotate/worker"
)

func AddSchedulerCommand(a *cli.App) *cobra.Command {
	var cronSpec string
	var port uint32
	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "scheduler runs partition maintenance unattended",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				a.Logger.Errorf("Failed to retrieve config: %v", err)
				return err
			}

			lo := a.Logger.(*log.Logger)
			lo.SetPrefix("scheduler")

			m, err := partition.NewManager(a.DB, cfg, lo)
			if err != nil {
				return err
			}

			// initialize scheduler
			s := worker.NewScheduler(lo)

			// register the maintenance job
			err = s.RegisterJob(cronSpec, "partition-maintenance", func(ctx context.Context, jobID string) {
				report, mErr := m.Maintain(ctx)
				if mErr != nil {
					lo.WithError(mErr).Errorf("maintenance job %s aborted", jobID)
				}
				if report != nil {
					run.DeliverReport(ctx, a.Sender, report, cfg.Topic, lo)
				}
			})
			if err != nil {
				return err
			}

			s.Start()
			defer s.Stop()

			router := chi.NewRouter()
			router.Handle("/metrics", promhttp.HandlerFor(metrics.Reg(), promhttp.HandlerOpts{}))

			srv := &http.Server{
				Handler: router,
				Addr:    fmt.Sprintf(":%d", port),
			}

			// returning the error (instead of exiting here) lets the
			// deferred scheduler stop and the root post-run DB close fire.
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron-spec", "@every 24h", "maintenance schedule, '@every <duration>' or a cron expression")
	cmd.Flags().Uint32Var(&port, "port", 5007, "port to serve metrics")
	return cmd
}

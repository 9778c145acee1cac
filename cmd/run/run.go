package run

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/frain-dev/partrotate/config"
	"github.com/frain-dev/partrotate/internal/pkg/cli"
	"github.com/frain-dev/partrotate/notification"
	"github.com/frain-dev/partrotate/partition"
	"github.com/frain-dev/partrotate/pkg/log"
)

func AddRunCommand(a *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run performs one partition maintenance pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				a.Logger.Errorf("Failed to retrieve config: %v", err)
				return err
			}

			lo := a.Logger.(*log.Logger)
			lo.SetPrefix("run")

			m, err := partition.NewManager(a.DB, cfg, lo)
			if err != nil {
				return err
			}

			ctx := context.Background()

			report, err := m.Maintain(ctx)
			if report != nil {
				DeliverReport(ctx, a.Sender, report, cfg.Topic, lo)
			}

			return err
		},
	}

	return cmd
}

// DeliverReport sends every non-empty report section, then the topic line
// identifying the environment. Delivery failure is logged and never aborts
// or retries the batch; it is not a partition-management failure.
func DeliverReport(ctx context.Context, sender notification.Sender, report *partition.Report, topic string, logger log.StdLogger) {
	for _, kind := range partition.Kinds {
		if err := notification.Deliver(ctx, sender, report.Render(kind)); err != nil {
			logger.WithError(err).Errorf("failed to deliver %s report section", kind)
		}
	}

	if err := notification.Deliver(ctx, sender, topic); err != nil {
		logger.WithError(err).Error("failed to deliver report topic")
	}
}

package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	partrotate "github.com/frain-dev/partrotate"
	"github.com/frain-dev/partrotate/cmd/run"
	"github.com/frain-dev/partrotate/cmd/scheduler"
	"github.com/frain-dev/partrotate/cmd/version"
	"github.com/frain-dev/partrotate/config"
	"github.com/frain-dev/partrotate/database/mysql"
	"github.com/frain-dev/partrotate/internal/pkg/cli"
	"github.com/frain-dev/partrotate/notification"
	"github.com/frain-dev/partrotate/notification/email"
	"github.com/frain-dev/partrotate/notification/noop"
	"github.com/frain-dev/partrotate/notification/slack"
	"github.com/frain-dev/partrotate/notification/telegram"
	"github.com/frain-dev/partrotate/pkg/log"
)

func main() {
	slog := log.NewLogger(os.Stdout)

	app := &cli.App{}
	app.Version = partrotate.GetVersion()
	app.Logger = slog

	c := cli.NewCli(app)

	var configFile string
	c.Flags().StringVar(&configFile, "config", "./partrotate.json", "Configuration file for partrotate")

	c.PersistentPreRunE(func(cmd *cobra.Command, args []string) error {
		err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}

		cfg, err := config.Get()
		if err != nil {
			return err
		}

		lvl, err := log.ParseLevel(cfg.Logger.Level)
		if err != nil {
			return err
		}
		slog.SetLevel(lvl)

		db, err := mysql.NewDB(cfg.Database)
		if err != nil {
			return err
		}
		app.DB = db

		sender, err := newSender(cfg)
		if err != nil {
			return err
		}
		app.Sender = sender

		return nil
	})

	c.PersistentPostRunE(func(cmd *cobra.Command, args []string) error {
		if app.DB != nil {
			return app.DB.Close()
		}
		return nil
	})

	c.AddCommand(run.AddRunCommand(app))
	c.AddCommand(scheduler.AddSchedulerCommand(app))
	c.AddCommand(version.AddVersionCommand())

	if err := c.Execute(); err != nil {
		slog.Fatal(err)
	}
}

func newSender(cfg config.Configuration) (notification.Sender, error) {
	switch cfg.Notification.Type {
	case config.TelegramNotificationProvider:
		return telegram.NewTelegramNotificationSender(cfg.Notification.Telegram.BotToken, cfg.Notification.Telegram.ChatID), nil
	case config.SlackNotificationProvider:
		return slack.NewSlackNotificationSender(cfg.Notification.Slack.WebhookURL), nil
	case config.EmailNotificationProvider:
		return email.NewEmailNotificationSender(&cfg.SMTP)
	case config.NoopNotificationProvider:
		return noop.NewNoopNotificationSender(), nil
	default:
		return nil, fmt.Errorf("unknown notification provider - '%s'", cfg.Notification.Type)
	}
}

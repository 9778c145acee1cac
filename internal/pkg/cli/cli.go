package cli

import (
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/frain-dev/partrotate/database"
	"github.com/frain-dev/partrotate/notification"
	"github.com/frain-dev/partrotate/pkg/log"
)

// App is the core dependency of the entire binary.
type App struct {
	Version string
	DB      database.Database
	Logger  log.StdLogger
	Sender  notification.Sender
}

type Cli struct {
	cmd *cobra.Command
}

func NewCli(app *App) *Cli {
	cmd := &cobra.Command{
		Use:     "partrotate",
		Version: app.Version,
		Short:   "Rolling date-partition maintenance for MySQL fleets",
	}

	return &Cli{cmd: cmd}
}

func (c *Cli) Flags() *flag.FlagSet {
	return c.cmd.PersistentFlags()
}

func (c *Cli) PersistentPreRunE(fn func(*cobra.Command, []string) error) {
	c.cmd.PersistentPreRunE = fn
}

func (c *Cli) PersistentPostRunE(fn func(*cobra.Command, []string) error) {
	c.cmd.PersistentPostRunE = fn
}

func (c *Cli) AddCommand(subCmd *cobra.Command) {
	c.cmd.AddCommand(subCmd)
}

func (c *Cli) Execute() error {
	return c.cmd.Execute()
}

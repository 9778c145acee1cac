package version

import (
	"github.com/spf13/cobra"
)

func AddVersionCommand() *cobra.Command {
	// pre/post run hooks are overridden so printing the version never
	// loads config or opens a database session.
	cmd := &cobra.Command{
		Use:              "version",
		Short:            "Print the partrotate version",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.SetArgs([]string{"--version"})
			return root.Execute()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {},
	}

	return cmd
}

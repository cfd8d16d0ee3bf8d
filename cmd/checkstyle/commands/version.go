package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ningg/checkstyle/pkg/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "checkstyle %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

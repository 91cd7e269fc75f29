package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/forge/logging"
)

// Version shows the current forge version.
func Version(logger logging.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Show current 'forge' version",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			logger.Info(version)
			return nil
		}),
	}
	AddHelpFlag(cmd, "version")
	return cmd
}

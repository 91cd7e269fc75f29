package main

import (
	"os"

	"github.com/heroku/color"
	"github.com/spf13/cobra"

	"github.com/buildpacks/forge/internal/commands"
	ilogging "github.com/buildpacks/forge/internal/logging"
)

var Version = "0.0.0"

func main() {
	logger := ilogging.NewLogWithWriters(os.Stdout, os.Stderr)

	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "CLI for building app images straight from source",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil {
					color.Disable(flag)
				}
				if flag, err := fs.GetBool("quiet"); err == nil {
					logger.WantQuiet(flag)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")
	commands.AddHelpFlag(rootCmd, "forge")

	rootCmd.AddCommand(commands.Build(logger))
	rootCmd.AddCommand(commands.Plan(logger))
	rootCmd.AddCommand(commands.Version(logger, Version))

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

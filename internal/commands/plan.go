package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildpacks/forge"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
	"github.com/buildpacks/forge/logging"
)

type PlanFlags struct {
	Envs     []string
	Pkgs     []string
	BuildCmd string
	StartCmd string
}

// Plan prints the generated build plan without building anything.
func Plan(logger logging.Logger) *cobra.Command {
	var flags PlanFlags

	cmd := &cobra.Command{
		Use:   "plan <app-dir>",
		Args:  cobra.ExactArgs(1),
		Short: "Show the build plan generated for an app",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			options := planOptions(&BuildFlags{
				Envs:     flags.Envs,
				Pkgs:     flags.Pkgs,
				BuildCmd: flags.BuildCmd,
				StartCmd: flags.StartCmd,
			})

			p, err := forge.GenerateBuildPlan(args[0], flags.Envs, options)
			if err != nil {
				return err
			}

			out, err := p.ToJSON()
			if err != nil {
				return err
			}

			fmt.Fprintln(logger.Writer(), out)
			return nil
		}),
	}

	cmd.Flags().StringArrayVar(&flags.Envs, "env", nil, "Provide environment variables to the build (KEY or KEY=VALUE)")
	cmd.Flags().StringArrayVar(&flags.Pkgs, "pkgs", nil, "Provide additional nix packages to install")
	cmd.Flags().StringVar(&flags.BuildCmd, "build-cmd", "", "Specify the build command to use")
	cmd.Flags().StringVar(&flags.StartCmd, "start-cmd", "", "Specify the start command to use")
	AddHelpFlag(cmd, "plan")
	return cmd
}

func planOptions(flags *BuildFlags) plan.GenerateOptions {
	var options plan.GenerateOptions
	if flags.BuildCmd != "" {
		cmd := flags.BuildCmd
		options.CustomBuildCmd = &cmd
	}
	if flags.StartCmd != "" {
		cmd := flags.StartCmd
		options.CustomStartCmd = &cmd
	}
	for _, pkg := range flags.Pkgs {
		options.CustomPkgs = append(options.CustomPkgs, nix.NewPkg(pkg))
	}
	return options
}

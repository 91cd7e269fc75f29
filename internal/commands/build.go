package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/forge"
	"github.com/buildpacks/forge/internal/docker"
	"github.com/buildpacks/forge/internal/style"
	"github.com/buildpacks/forge/logging"
)

type BuildFlags struct {
	Name                string
	Envs                []string
	Pkgs                []string
	BuildCmd            string
	StartCmd            string
	PrintDockerfile     bool
	OutDir              string
	Tags                []string
	Labels              []string
	Quiet               bool
	CacheKey            string
	NoCache             bool
	Platform            []string
	CurrentDir          bool
	NoErrorWithoutStart bool
}

// Build generates an app image from source code.
func Build(logger logging.Logger) *cobra.Command {
	var flags BuildFlags

	cmd := &cobra.Command{
		Use:   "build <app-dir>",
		Args:  cobra.ExactArgs(1),
		Short: "Generate an app image from source code",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := forge.CreateDockerImage(cmd.Context(), logger, path, flags.Envs, planOptions(&flags), docker.BuilderOptions{
				Name:                flags.Name,
				OutDir:              flags.OutDir,
				PrintDockerfile:     flags.PrintDockerfile,
				Tags:                flags.Tags,
				Labels:              flags.Labels,
				Quiet:               flags.Quiet,
				CacheKey:            flags.CacheKey,
				NoCache:             flags.NoCache,
				Platform:            flags.Platform,
				CurrentDir:          flags.CurrentDir,
				NoErrorWithoutStart: flags.NoErrorWithoutStart,
			}); err != nil {
				return err
			}

			if !flags.PrintDockerfile {
				logger.Infof("Successfully processed %s", style.Symbol(path))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Name for the built image (defaults to a generated id)")
	cmd.Flags().StringArrayVar(&flags.Envs, "env", nil, "Provide environment variables to the build (KEY or KEY=VALUE)")
	cmd.Flags().StringArrayVar(&flags.Pkgs, "pkgs", nil, "Provide additional nix packages to install")
	cmd.Flags().StringVar(&flags.BuildCmd, "build-cmd", "", "Specify the build command to use")
	cmd.Flags().StringVar(&flags.StartCmd, "start-cmd", "", "Specify the start command to use")
	cmd.Flags().BoolVar(&flags.PrintDockerfile, "print-dockerfile", false, "Print the generated Dockerfile and exit")
	cmd.Flags().StringVarP(&flags.OutDir, "out", "o", "", "Save the build context to this directory instead of building")
	cmd.Flags().StringArrayVarP(&flags.Tags, "tag", "t", nil, "Additional tags for the built image")
	cmd.Flags().StringArrayVarP(&flags.Labels, "label", "l", nil, "Additional labels for the built image")
	cmd.Flags().BoolVar(&flags.Quiet, "docker-quiet", false, "Suppress build engine progress output")
	cmd.Flags().StringVar(&flags.CacheKey, "cache-key", "", "Unique id to key build cache mounts on")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable build cache mounts")
	cmd.Flags().StringArrayVar(&flags.Platform, "platform", nil, "Target platform(s) for the build")
	cmd.Flags().BoolVar(&flags.CurrentDir, "current-dir", false, "Use the app directory itself as the build context")
	cmd.Flags().BoolVar(&flags.NoErrorWithoutStart, "no-error-without-start", false, "Do not fail when no start command is detected")
	AddHelpFlag(cmd, "build")
	return cmd
}

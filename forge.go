// Package forge compiles an application source tree into a declarative
// build plan and synthesizes that plan into a Dockerfile and Nix environment
// for an external image-build backend.
package forge

import (
	"context"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/docker"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/plan"
	"github.com/buildpacks/forge/internal/project"
	"github.com/buildpacks/forge/internal/providers"
	"github.com/buildpacks/forge/logging"
)

// Providers returns the registered provider chain in priority order.
func Providers() []plan.Provider {
	return providers.Registry()
}

// GenerateBuildPlan detects the app's language strategy and compiles its
// build plan. envs are explicit KEY=VALUE configuration overrides.
func GenerateBuildPlan(path string, envs []string, options plan.GenerateOptions) (*plan.BuildPlan, error) {
	a, env, err := prepare(path, envs, &options)
	if err != nil {
		return nil, err
	}

	generator := plan.NewGenerator(Providers(), options)
	return generator.GeneratePlan(a, env)
}

// CreateDockerImage generates a build plan for the app, validates it, and
// builds (or, depending on options, prints or exports) the image. Canceling
// the context kills a running backend build.
func CreateDockerImage(ctx context.Context, logger logging.Logger, path string, envs []string, planOptions plan.GenerateOptions, buildOptions docker.BuilderOptions) error {
	a, env, err := prepare(path, envs, &planOptions)
	if err != nil {
		return err
	}

	generator := plan.NewGenerator(Providers(), planOptions)
	p, err := generator.GeneratePlan(a, env)
	if err != nil {
		return err
	}

	if err := p.ValidateStart(buildOptions.NoErrorWithoutStart); err != nil {
		return err
	}

	builder := docker.NewImageBuilder(logger, buildOptions)
	return builder.CreateImage(ctx, a.Source, p, env)
}

func prepare(path string, envs []string, options *plan.GenerateOptions) (*app.App, *environment.Environment, error) {
	a, err := app.New(path)
	if err != nil {
		return nil, nil, err
	}

	env, err := environment.FromEnvs(envs)
	if err != nil {
		return nil, nil, err
	}

	descriptor, err := project.ReadDescriptor(a)
	if err != nil {
		return nil, nil, err
	}
	if descriptor != nil {
		descriptor.Apply(env, options)
	}

	return a, env, nil
}

package plan

import (
	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
)

// Metadata carries facts discovered during detection (e.g. which build file
// matched) forward to capability calls so providers need not re-scan.
type Metadata map[string]string

// DetectResult is the outcome of a provider's detection predicate.
type DetectResult struct {
	Detected bool
	Metadata Metadata
}

// Provider is a language/framework strategy. Detect must be a pure predicate
// over file existence/content and the environment, cheap enough to run for
// every registered provider on every invocation.
//
// The remaining capabilities are optional: a provider contributes a phase by
// additionally implementing the matching capability interface. Capability
// calls all receive the same immutable (app, env, metadata) triple and must
// be safe to invoke independently.
type Provider interface {
	Name() string
	Detect(a *app.App, env *environment.Environment) (DetectResult, error)
}

type SetupProvider interface {
	Setup(a *app.App, env *environment.Environment, meta Metadata) (*SetupPhase, error)
}

type InstallProvider interface {
	Install(a *app.App, env *environment.Environment, meta Metadata) (*InstallPhase, error)
}

type BuildProvider interface {
	Build(a *app.App, env *environment.Environment, meta Metadata) (*BuildPhase, error)
}

type StartProvider interface {
	Start(a *app.App, env *environment.Environment, meta Metadata) (*StartPhase, error)
}

type EnvironmentVariablesProvider interface {
	EnvironmentVariables(a *app.App, env *environment.Environment, meta Metadata) (EnvironmentVariables, error)
}

type StaticAssetsProvider interface {
	StaticAssets(a *app.App, env *environment.Environment, meta Metadata) (map[string]string, error)
}

// GenerateOptions overrides parts of the generated plan, typically sourced
// from a forge.toml descriptor or CLI flags.
type GenerateOptions struct {
	CustomBuildCmd *string
	CustomStartCmd *string
	CustomPkgs     []nix.Pkg
}

// Generator assembles a build plan by consulting providers in registration
// order. The provider list is injected, fixed, and never mutated, so
// generators are safe to use from concurrent compilations.
type Generator struct {
	providers []Provider
	options   GenerateOptions
}

func NewGenerator(providers []Provider, options GenerateOptions) *Generator {
	return &Generator{providers: providers, options: options}
}

// GeneratePlan selects the first provider whose detection succeeds and folds
// its capability outputs into a single plan. Registration order is the
// tie-break policy: more specific providers must be registered before
// generic fallbacks.
func (g *Generator) GeneratePlan(a *app.App, env *environment.Environment) (*BuildPlan, error) {
	for _, provider := range g.providers {
		result, err := provider.Detect(a, env)
		if err != nil {
			// A partially detected project is a user configuration error,
			// not a cue to try the next strategy.
			return nil, err
		}
		if result.Detected {
			return g.planFromProvider(provider, a, env, result.Metadata)
		}
	}

	return nil, NewError(NoProviderDetected, "no provider matched the source tree at %s", a.Source)
}

func (g *Generator) planFromProvider(provider Provider, a *app.App, env *environment.Environment, meta Metadata) (*BuildPlan, error) {
	p := &BuildPlan{}

	if sp, ok := provider.(SetupProvider); ok {
		setup, err := sp.Setup(a, env, meta)
		if err != nil {
			return nil, err
		}
		p.Setup = setup
	}
	if ip, ok := provider.(InstallProvider); ok {
		install, err := ip.Install(a, env, meta)
		if err != nil {
			return nil, err
		}
		p.Install = install
	}
	if bp, ok := provider.(BuildProvider); ok {
		build, err := bp.Build(a, env, meta)
		if err != nil {
			return nil, err
		}
		p.Build = build
	}
	if sp, ok := provider.(StartProvider); ok {
		start, err := sp.Start(a, env, meta)
		if err != nil {
			return nil, err
		}
		p.Start = start
	}
	if ep, ok := provider.(EnvironmentVariablesProvider); ok {
		variables, err := ep.EnvironmentVariables(a, env, meta)
		if err != nil {
			return nil, err
		}
		p.AddVariables(variables)
	}
	if ap, ok := provider.(StaticAssetsProvider); ok {
		assets, err := ap.StaticAssets(a, env, meta)
		if err != nil {
			return nil, err
		}
		for name, content := range assets {
			p.AddStaticAsset(name, content)
		}
	}

	g.applyOptions(p)

	return p, nil
}

func (g *Generator) applyOptions(p *BuildPlan) {
	if len(g.options.CustomPkgs) > 0 {
		if p.Setup == nil {
			p.Setup = NewSetupPhase(nil)
		}
		p.Setup.AddPkgs(g.options.CustomPkgs)
	}
	if g.options.CustomBuildCmd != nil {
		if p.Build == nil {
			p.Build = &BuildPhase{}
		}
		p.Build.Cmds = []string{*g.options.CustomBuildCmd}
	}
	if g.options.CustomStartCmd != nil {
		if p.Start == nil {
			p.Start = &StartPhase{}
		}
		p.Start.Cmd = g.options.CustomStartCmd
	}
}

package providers

import (
	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
)

const defaultClojureJDKPkg = "jdk8"

type ClojureProvider struct{}

func (p *ClojureProvider) Name() string {
	return "clojure"
}

func (p *ClojureProvider) Detect(a *app.App, _ *environment.Environment) (plan.DetectResult, error) {
	return plan.DetectResult{Detected: a.IncludesFile("project.clj")}, nil
}

func (p *ClojureProvider) Setup(a *app.App, env *environment.Environment, _ plan.Metadata) (*plan.SetupPhase, error) {
	jdk, err := clojureJDKPkg(a, env)
	if err != nil {
		return nil, err
	}
	return plan.NewSetupPhase([]nix.Pkg{nix.NewPkg("leiningen"), jdk}), nil
}

func (p *ClojureProvider) Build(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.BuildPhase, error) {
	return plan.NewBuildPhase("lein uberjar"), nil
}

func (p *ClojureProvider) Start(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.StartPhase, error) {
	return plan.NewStartPhase("java $JAVA_OPTS -jar target/uberjar/*standalone.jar"), nil
}

// clojureJDKPkg resolves the JDK package by priority: FORGE_JDK_VERSION
// config variable, then a .jdk-version file, then the default.
func clojureJDKPkg(a *app.App, env *environment.Environment) (nix.Pkg, error) {
	version := env.GetConfigVariable("JDK_VERSION")

	if version == "" && a.IncludesFile(".jdk-version") {
		contents, err := a.ReadFile(".jdk-version")
		if err != nil {
			return nix.Pkg{}, err
		}
		version = contents
	}

	major, ok := parseMajorVersion(version)
	if !ok {
		return nix.NewPkg(defaultClojureJDKPkg), nil
	}

	switch major {
	case 11:
		return nix.NewPkg("jdk11"), nil
	default:
		return nix.NewPkg(defaultClojureJDKPkg), nil
	}
}

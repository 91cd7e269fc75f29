package providers

import (
	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
)

const golangRunImage = "debian:bullseye-slim"

type GolangProvider struct{}

func (p *GolangProvider) Name() string {
	return "golang"
}

func (p *GolangProvider) Detect(a *app.App, _ *environment.Environment) (plan.DetectResult, error) {
	return plan.DetectResult{Detected: a.IncludesFile("main.go") || a.IncludesFile("go.mod")}, nil
}

func (p *GolangProvider) Setup(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.SetupPhase, error) {
	return plan.NewSetupPhase([]nix.Pkg{nix.NewPkg("go")}), nil
}

func (p *GolangProvider) Install(a *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.InstallPhase, error) {
	if !a.IncludesFile("go.mod") {
		return nil, nil
	}
	install := plan.NewInstallPhase("go mod download")
	install.AddCacheDirectory("~/go/pkg/mod")
	return install, nil
}

func (p *GolangProvider) Build(a *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.BuildPhase, error) {
	var build *plan.BuildPhase
	if a.IncludesFile("go.mod") {
		build = plan.NewBuildPhase("go build -o out")
	} else {
		build = plan.NewBuildPhase("go build -o out main.go")
	}
	build.AddCacheDirectory("~/.cache/go-build")
	return build, nil
}

func (p *GolangProvider) Start(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.StartPhase, error) {
	start := plan.NewStartPhase("./out")

	// Binaries are static with CGO disabled, so the final layer can run
	// from a slim image with just the compiled artifact.
	start.UseRunImage(golangRunImage)
	start.OnlyIncludeFiles = []string{"./out"}
	return start, nil
}

func (p *GolangProvider) EnvironmentVariables(_ *app.App, _ *environment.Environment, _ plan.Metadata) (plan.EnvironmentVariables, error) {
	return plan.EnvironmentVariables{"CGO_ENABLED": "0"}, nil
}

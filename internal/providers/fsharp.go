package providers

import (
	"fmt"
	"strings"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
)

const fsharpArtifactDir = "out"

type FSharpProvider struct{}

func (p *FSharpProvider) Name() string {
	return "fsharp"
}

func (p *FSharpProvider) Detect(a *app.App, _ *environment.Environment) (plan.DetectResult, error) {
	projects, err := a.FindFiles("*.fsproj")
	if err != nil {
		return plan.DetectResult{}, err
	}
	if len(projects) == 0 {
		return plan.DetectResult{}, nil
	}

	// Remember which project file matched so Start need not re-glob.
	return plan.DetectResult{
		Detected: true,
		Metadata: plan.Metadata{"project": projects[0]},
	}, nil
}

func (p *FSharpProvider) Setup(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.SetupPhase, error) {
	return plan.NewSetupPhase([]nix.Pkg{nix.NewPkg("dotnet-sdk")}), nil
}

func (p *FSharpProvider) Install(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.InstallPhase, error) {
	return plan.NewInstallPhase("dotnet restore"), nil
}

func (p *FSharpProvider) Build(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.BuildPhase, error) {
	return plan.NewBuildPhase(fmt.Sprintf("dotnet publish --no-restore -c Release -o %s", fsharpArtifactDir)), nil
}

func (p *FSharpProvider) Start(_ *app.App, _ *environment.Environment, meta plan.Metadata) (*plan.StartPhase, error) {
	project := strings.TrimSuffix(meta["project"], ".fsproj")
	return plan.NewStartPhase(fmt.Sprintf("./%s/%s", fsharpArtifactDir, project)), nil
}

func (p *FSharpProvider) EnvironmentVariables(_ *app.App, _ *environment.Environment, _ plan.Metadata) (plan.EnvironmentVariables, error) {
	return plan.EnvironmentVariables{
		"ASPNETCORE_ENVIRONMENT": "Production",
		"ASPNETCORE_URLS":        "http://0.0.0.0:3000",
		"DOTNET_ROOT":            "/nix/var/nix/profiles/default/",
	}, nil
}

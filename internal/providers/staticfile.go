package providers

import (
	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
)

// nginx serves out of the app directory; the config itself is generated at
// plan time and shipped through the static-asset staging directory.
const staticfileNginxConf = `daemon off;
worker_processes auto;

events {
  worker_connections 1024;
}

http {
  server {
    listen 0.0.0.0:80;
    root /app;
    index index.html;

    location / {
      try_files $uri $uri/ =404;
    }
  }
}
`

// StaticfileProvider is the fallback strategy for plain static sites. It
// must stay last in the registry so every language-specific provider gets a
// chance first.
type StaticfileProvider struct{}

func (p *StaticfileProvider) Name() string {
	return "staticfile"
}

func (p *StaticfileProvider) Detect(a *app.App, _ *environment.Environment) (plan.DetectResult, error) {
	return plan.DetectResult{Detected: a.IncludesFile("index.html") || a.IncludesFile("Staticfile")}, nil
}

func (p *StaticfileProvider) Setup(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.SetupPhase, error) {
	return plan.NewSetupPhase([]nix.Pkg{nix.NewPkg("nginx")}), nil
}

func (p *StaticfileProvider) Start(_ *app.App, _ *environment.Environment, _ plan.Metadata) (*plan.StartPhase, error) {
	return plan.NewStartPhase("nginx -c " + app.AssetsDir + "nginx.conf"), nil
}

func (p *StaticfileProvider) StaticAssets(_ *app.App, _ *environment.Environment, _ plan.Metadata) (map[string]string, error) {
	return map[string]string{"nginx.conf": staticfileNginxConf}, nil
}

// Package plan defines the build-plan intermediate representation produced
// by provider detection and consumed by Dockerfile synthesis, along with the
// generator that assembles plans from registered providers.
package plan

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// EnvironmentVariables are build-time arguments re-exported as runtime
// environment variables.
type EnvironmentVariables map[string]string

// BuildPlan is the ordered aggregate of build phases plus global variables
// and provider-generated static assets. Phases that a provider did not
// contribute are nil, not empty.
type BuildPlan struct {
	Setup   *SetupPhase   `json:"setup,omitempty"`
	Install *InstallPhase `json:"install,omitempty"`
	Build   *BuildPhase   `json:"build,omitempty"`
	Start   *StartPhase   `json:"start,omitempty"`

	Variables EnvironmentVariables `json:"variables,omitempty"`

	// StaticAssets maps context-relative file names to generated content,
	// staged under the build context's assets/ directory.
	StaticAssets map[string]string `json:"staticAssets,omitempty"`
}

func (p *BuildPlan) AddVariables(variables EnvironmentVariables) {
	if p.Variables == nil {
		p.Variables = EnvironmentVariables{}
	}
	for name, value := range variables {
		p.Variables[name] = value
	}
}

func (p *BuildPlan) AddStaticAsset(name, content string) {
	if p.StaticAssets == nil {
		p.StaticAssets = map[string]string{}
	}
	p.StaticAssets[name] = content
}

// ValidateStart checks that the plan has a runnable entry point. Validation
// happens before synthesis so the synthesizer stays total over any plan
// shape; allowMissing accepts plans without one (no CMD is emitted).
func (p *BuildPlan) ValidateStart(allowMissing bool) error {
	if p.Start == nil || p.Start.Cmd == nil {
		if allowMissing {
			return nil
		}
		return NewError(NoStartCommand, "no start command could be found")
	}
	return nil
}

// ToJSON renders the plan for `forge plan` output and debugging.
func (p *BuildPlan) ToJSON() (string, error) {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "serializing build plan")
	}
	return string(out), nil
}

// BuildString summarizes the plan for build-time progress output.
func (p *BuildPlan) BuildString() string {
	var b strings.Builder

	writeCmds := func(label string, cmds []string) {
		if len(cmds) == 0 {
			return
		}
		fmt.Fprintf(&b, "  %s: %s\n", label, strings.Join(cmds, " && "))
	}

	b.WriteString("Build plan\n")
	if p.Setup != nil && len(p.Setup.Pkgs) > 0 {
		names := make([]string, 0, len(p.Setup.Pkgs))
		for _, pkg := range p.Setup.Pkgs {
			names = append(names, pkg.String())
		}
		fmt.Fprintf(&b, "  packages: %s\n", strings.Join(names, ", "))
	}
	if p.Install != nil {
		writeCmds("install", p.Install.Cmds)
	}
	if p.Build != nil {
		writeCmds("build", p.Build.Cmds)
	}
	if p.Start != nil && p.Start.Cmd != nil {
		fmt.Fprintf(&b, "  start: %s\n", *p.Start.Cmd)
	}
	if len(p.Variables) > 0 {
		names := make([]string, 0, len(p.Variables))
		for name := range p.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "  variables: %s\n", strings.Join(names, ", "))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

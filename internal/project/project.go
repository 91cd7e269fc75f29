// Package project reads the optional forge.toml descriptor, which lets an
// app pin packages and override generated commands without CLI flags.
package project

import (
	"sort"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
)

const DescriptorFile = "forge.toml"

type phaseOverride struct {
	Cmd string `toml:"cmd"`
}

type Descriptor struct {
	Pkgs  []string      `toml:"pkgs"`
	Build phaseOverride `toml:"build"`
	Start phaseOverride `toml:"start"`

	// Variables behave like FORGE_* overrides; explicit environment
	// variables still win.
	Variables map[string]string `toml:"variables"`
}

// ReadDescriptor loads forge.toml from the app root. A missing descriptor is
// not an error; a malformed one is.
func ReadDescriptor(a *app.App) (*Descriptor, error) {
	if !a.IncludesFile(DescriptorFile) {
		return nil, nil
	}

	var descriptor Descriptor
	if err := a.ReadTOML(DescriptorFile, &descriptor); err != nil {
		return nil, err
	}
	return &descriptor, nil
}

// Apply folds descriptor values into the generation options and environment.
func (d *Descriptor) Apply(env *environment.Environment, options *plan.GenerateOptions) {
	for _, name := range sortedKeys(d.Variables) {
		if env.GetVariable(name) == "" {
			env.SetVariable(name, d.Variables[name])
		}
	}

	for _, pkg := range d.Pkgs {
		options.CustomPkgs = append(options.CustomPkgs, nix.NewPkg(pkg))
	}
	if d.Build.Cmd != "" && options.CustomBuildCmd == nil {
		cmd := d.Build.Cmd
		options.CustomBuildCmd = &cmd
	}
	if d.Start.Cmd != "" && options.CustomStartCmd == nil {
		cmd := d.Start.Cmd
		options.CustomStartCmd = &cmd
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	// map order must never leak into generated plans
	sort.Strings(keys)
	return keys
}

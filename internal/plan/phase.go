package plan

import "github.com/buildpacks/forge/internal/nix"

// DefaultBaseImage is the image every setup phase starts from unless a
// provider overrides it. It must carry a Nix toolchain so the generated
// Dockerfile can install the environment expression.
const DefaultBaseImage = "nixos/nix"

// File lists on phases follow a nil-vs-empty convention: a nil slice means
// "no restriction declared" (the synthesizer copies the full build context),
// while a non-nil empty slice is an explicit, empty restriction.

type SetupPhase struct {
	Pkgs             []nix.Pkg `json:"pkgs,omitempty"`
	AptPkgs          []string  `json:"aptPkgs,omitempty"`
	Cmds             []string  `json:"cmds,omitempty"`
	OnlyIncludeFiles []string  `json:"onlyIncludeFiles,omitempty"`
	BaseImage        string    `json:"baseImage,omitempty"`
}

func NewSetupPhase(pkgs []nix.Pkg) *SetupPhase {
	return &SetupPhase{Pkgs: pkgs, BaseImage: DefaultBaseImage}
}

func (p *SetupPhase) AddPkgs(pkgs []nix.Pkg) {
	p.Pkgs = append(p.Pkgs, pkgs...)
}

func (p *SetupPhase) AddAptPkgs(pkgs []string) {
	p.AptPkgs = append(p.AptPkgs, pkgs...)
}

type InstallPhase struct {
	Cmds             []string `json:"cmds,omitempty"`
	OnlyIncludeFiles []string `json:"onlyIncludeFiles,omitempty"`
	CacheDirectories []string `json:"cacheDirectories,omitempty"`

	// Paths are prepended to PATH for the remaining build and for the
	// runtime container.
	Paths []string `json:"paths,omitempty"`
}

func NewInstallPhase(cmd string) *InstallPhase {
	return &InstallPhase{Cmds: []string{cmd}}
}

func (p *InstallPhase) AddCacheDirectory(dir string) {
	p.CacheDirectories = append(p.CacheDirectories, dir)
}

func (p *InstallPhase) AddPath(path string) {
	p.Paths = append(p.Paths, path)
}

type BuildPhase struct {
	Cmds             []string `json:"cmds,omitempty"`
	OnlyIncludeFiles []string `json:"onlyIncludeFiles,omitempty"`
	CacheDirectories []string `json:"cacheDirectories,omitempty"`
}

func NewBuildPhase(cmd string) *BuildPhase {
	return &BuildPhase{Cmds: []string{cmd}}
}

func (p *BuildPhase) AddCacheDirectory(dir string) {
	p.CacheDirectories = append(p.CacheDirectories, dir)
}

type StartPhase struct {
	// Cmd is nil when no runnable entry point was detected, which is a
	// distinct state from an explicitly empty command.
	Cmd              *string  `json:"cmd,omitempty"`
	RunImage         string   `json:"runImage,omitempty"`
	OnlyIncludeFiles []string `json:"onlyIncludeFiles,omitempty"`
}

func NewStartPhase(cmd string) *StartPhase {
	return &StartPhase{Cmd: &cmd}
}

// UseRunImage switches the final image layer to a separate, usually smaller,
// base image.
func (p *StartPhase) UseRunImage(image string) {
	p.RunImage = image
}

// MergeFileLists combines the only-include file lists of two phases of the
// same kind. nil merged with nil stays nil; otherwise the result is the
// order-preserving concatenation (duplicates are allowed, copy targets are
// idempotent at synthesis time).
func MergeFileLists(a, b []string) []string {
	if a == nil && b == nil {
		return nil
	}
	merged := make([]string, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged
}

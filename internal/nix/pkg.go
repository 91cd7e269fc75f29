package nix

import "fmt"

// Pkg is a named Nix package with an optional version pin.
type Pkg struct {
	Name    string
	Version string
}

func NewPkg(name string) Pkg {
	return Pkg{Name: name}
}

func NewPkgWithVersion(name, version string) Pkg {
	return Pkg{Name: name, Version: version}
}

func (p Pkg) String() string {
	if p.Version == "" {
		return p.Name
	}
	return fmt.Sprintf("%s@%s", p.Name, p.Version)
}

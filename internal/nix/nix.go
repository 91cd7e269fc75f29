// Package nix renders the environment.nix expression consumed by the
// generated Dockerfile's setup layer.
package nix

import (
	"fmt"
	"strings"
)

// Pinned nixpkgs revision so that two runs against the same plan install
// identical package closures.
const nixpkgsArchive = "https://github.com/NixOS/nixpkgs/archive/5148520bfab61f99fd25fb9ff7bfbb50dad3c9db.tar.gz"

// CreateNixExpression renders a buildEnv expression for the given setup
// packages. The output is deterministic: packages appear in plan order.
func CreateNixExpression(pkgs []Pkg) string {
	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Name)
	}

	var b strings.Builder
	b.WriteString("{ }:\n\n")
	b.WriteString(fmt.Sprintf("let pkgs = import (fetchTarball \"%s\") { };\n", nixpkgsArchive))
	b.WriteString("in with pkgs;\nbuildEnv {\n")
	b.WriteString("  name = \"env\";\n")
	b.WriteString(fmt.Sprintf("  paths = [\n    %s\n  ];\n", strings.Join(names, "\n    ")))
	b.WriteString("}\n")

	return b.String()
}

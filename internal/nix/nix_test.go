package nix_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/forge/internal/nix"
	h "github.com/buildpacks/forge/testhelpers"
)

func TestNix(t *testing.T) {
	spec.Run(t, "testNix", testNix, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testNix(t *testing.T, when spec.G, it spec.S) {
	when("#CreateNixExpression", func() {
		it("pins nixpkgs and lists packages in plan order", func() {
			expression := nix.CreateNixExpression([]nix.Pkg{nix.NewPkg("go"), nix.NewPkg("ffmpeg")})

			h.AssertContains(t, expression, "fetchTarball")
			h.AssertContains(t, expression, "nixpkgs/archive/")
			h.AssertContains(t, expression, "paths = [\n    go\n    ffmpeg\n  ];")
		})

		it("is byte-identical across runs", func() {
			pkgs := []nix.Pkg{nix.NewPkg("jdk"), nix.NewPkg("maven")}
			h.AssertEq(t, nix.CreateNixExpression(pkgs), nix.CreateNixExpression(pkgs))
		})
	})

	when("#Pkg", func() {
		it("renders an optional version pin", func() {
			h.AssertEq(t, nix.NewPkg("nginx").String(), "nginx")
			h.AssertEq(t, nix.NewPkgWithVersion("nodejs", "18").String(), "nodejs@18")
		})
	})
}

package providers

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/plan"
	h "github.com/buildpacks/forge/testhelpers"
)

func TestRegistry(t *testing.T) {
	spec.Run(t, "testRegistry", testRegistry, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testRegistry(t *testing.T, when spec.G, it spec.S) {
	it("prefers language providers over the static fallback", func() {
		// The fixture is both a Go program and a static site; registration
		// order decides, and golang is registered before staticfile.
		a, err := app.New("testdata/golang-static")
		h.AssertNil(t, err)

		generator := plan.NewGenerator(Registry(), plan.GenerateOptions{})
		p, err := generator.GeneratePlan(a, environment.New(nil))
		h.AssertNil(t, err)
		h.AssertEq(t, p.Build.Cmds, []string{"go build -o out main.go"})
	})

	it("keeps the static fallback last", func() {
		registry := Registry()
		h.AssertEq(t, registry[len(registry)-1].Name(), "staticfile")
	})

	it("compiles a Go plan for a Go tree carrying a stray gradle wrapper", func() {
		// golang registers before java, so java's loud validation of the
		// incomplete wrapper never runs.
		a, err := app.New("testdata/golang-gradlew")
		h.AssertNil(t, err)

		generator := plan.NewGenerator(Registry(), plan.GenerateOptions{})
		p, err := generator.GeneratePlan(a, environment.New(nil))
		h.AssertNil(t, err)
		h.AssertEq(t, p.Build.Cmds, []string{"go build -o out main.go"})
	})

	when("#parseMajorVersion", func() {
		it("tolerates quoted and padded values", func() {
			major, ok := parseMajorVersion(" \"11\"\n")
			h.AssertEq(t, ok, true)
			h.AssertEq(t, major, int64(11))
		})

		it("rejects garbage without guessing", func() {
			_, ok := parseMajorVersion("latest-and-greatest")
			h.AssertEq(t, ok, false)
		})
	})
}

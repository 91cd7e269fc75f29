package providers

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	h "github.com/buildpacks/forge/testhelpers"
)

func TestStaticfileProvider(t *testing.T) {
	spec.Run(t, "testStaticfileProvider", testStaticfileProvider, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testStaticfileProvider(t *testing.T, when spec.G, it spec.S) {
	provider := &StaticfileProvider{}
	env := environment.New(nil)

	it("detects on index.html", func() {
		a, err := app.New("testdata/staticfile")
		h.AssertNil(t, err)

		result, err := provider.Detect(a, env)
		h.AssertNil(t, err)
		h.AssertEq(t, result.Detected, true)
	})

	it("serves the site with nginx and a generated config", func() {
		a, err := app.New("testdata/staticfile")
		h.AssertNil(t, err)

		start, err := provider.Start(a, env, nil)
		h.AssertNil(t, err)
		h.AssertEq(t, *start.Cmd, "nginx -c /assets/nginx.conf")

		assets, err := provider.StaticAssets(a, env, nil)
		h.AssertNil(t, err)
		h.AssertContains(t, assets["nginx.conf"], "daemon off;")
		h.AssertContains(t, assets["nginx.conf"], "root /app;")
	})
}

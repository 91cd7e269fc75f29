package docker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/forge/internal/environment"
	ilogging "github.com/buildpacks/forge/internal/logging"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
	h "github.com/buildpacks/forge/testhelpers"
)

func TestImageBuilder(t *testing.T) {
	spec.Run(t, "testImageBuilder", testImageBuilder, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testImageBuilder(t *testing.T, when spec.G, it spec.S) {
	var (
		outBuf bytes.Buffer
		env    = environment.New(nil)
	)

	newPlan := func() *plan.BuildPlan {
		cmd := "./out"
		return &plan.BuildPlan{
			Setup: plan.NewSetupPhase([]nix.Pkg{nix.NewPkg("go")}),
			Build: plan.NewBuildPhase("go build -o out"),
			Start: &plan.StartPhase{Cmd: &cmd},
		}
	}

	writeApp := func() string {
		source := t.TempDir()
		h.AssertNil(t, os.WriteFile(filepath.Join(source, "main.go"), []byte("package main\n"), 0644))
		return source
	}

	when("#CreateImage", func() {
		it("prints the Dockerfile and writes nothing", func() {
			builder := NewImageBuilder(ilogging.NewLogWithWriters(&outBuf, &outBuf), BuilderOptions{
				PrintDockerfile: true,
			})

			h.AssertNil(t, builder.CreateImage(context.Background(), writeApp(), newPlan(), env))
			h.AssertContains(t, outBuf.String(), "FROM "+plan.DefaultBaseImage)
			h.AssertContains(t, outBuf.String(), `CMD ["./out"]`)
		})

		it("exports a complete build context with --out", func() {
			outDir := t.TempDir()
			builder := NewImageBuilder(ilogging.NewLogWithWriters(&outBuf, &outBuf), BuilderOptions{
				OutDir: outDir,
			})

			p := newPlan()
			p.AddStaticAsset("nginx.conf", "daemon off;")
			h.AssertNil(t, builder.CreateImage(context.Background(), writeApp(), p, env))

			// app copy, recipe files, and staged assets
			for _, f := range []string{
				"main.go",
				filepath.Join(DotForgeDir, "Dockerfile"),
				EnvironmentNixPath,
				filepath.Join(ContextAssetsDir, "nginx.conf"),
			} {
				_, err := os.Stat(filepath.Join(outDir, f))
				h.AssertNil(t, err)
			}

			expression, err := os.ReadFile(filepath.Join(outDir, EnvironmentNixPath))
			h.AssertNil(t, err)
			h.AssertContains(t, string(expression), "go")
		})

		it("does not invoke the backend once the context is canceled", func() {
			builder := NewImageBuilder(ilogging.NewLogWithWriters(&outBuf, &outBuf), BuilderOptions{
				Name: "my-image",
				Backend: BackendTemplate{
					Command: "/bin/sh",
					Args:    []string{"-c", "sleep 10"},
				},
			})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := builder.CreateImage(ctx, writeApp(), newPlan(), env)
			h.AssertErrorContains(t, err, "context canceled")
		})
	})

	when("#backendCommand", func() {
		it("expands the default backend template", func() {
			builder := NewImageBuilder(ilogging.NewLogWithWriters(&outBuf, &outBuf), BuilderOptions{})
			cmd := builder.backendCommand(context.Background(), "/ctx", "/ctx/.forge/Dockerfile", "my-image", newPlan())

			h.AssertEq(t, cmd.Args, []string{
				"docker", "build", "/ctx", "-f", "/ctx/.forge/Dockerfile", "-t", "my-image",
			})
			h.AssertContains(t, strings.Join(cmd.Env, " "), "DOCKER_BUILDKIT=1")
		})

		it("appends flags and sorted build args", func() {
			builder := NewImageBuilder(ilogging.NewLogWithWriters(&outBuf, &outBuf), BuilderOptions{
				Quiet:    true,
				NoCache:  true,
				Tags:     []string{"extra:latest"},
				Labels:   []string{"team=infra"},
				Platform: []string{"linux/amd64"},
			})
			p := newPlan()
			p.AddVariables(plan.EnvironmentVariables{"B_VAR": "2", "A_VAR": "1"})

			cmd := builder.backendCommand(context.Background(), "/ctx", "/ctx/.forge/Dockerfile", "my-image", p)
			joined := strings.Join(cmd.Args, " ")
			h.AssertContains(t, joined, "--quiet")
			h.AssertContains(t, joined, "--no-cache")
			h.AssertContains(t, joined, "--build-arg A_VAR=1 --build-arg B_VAR=2")
			h.AssertContains(t, joined, "-t extra:latest")
			h.AssertContains(t, joined, "--label team=infra")
			h.AssertContains(t, joined, "--platform linux/amd64")
		})

		it("substitutes placeholders in a custom backend", func() {
			builder := NewImageBuilder(ilogging.NewLogWithWriters(&outBuf, &outBuf), BuilderOptions{
				Backend: BackendTemplate{
					Command: "buildctl",
					Args:    []string{"build", "--local", "context={context}", "--opt", "filename={dockerfile}"},
				},
			})
			cmd := builder.backendCommand(context.Background(), "/ctx", "/ctx/.forge/Dockerfile", "my-image", newPlan())
			h.AssertEq(t, cmd.Args, []string{
				"buildctl", "build", "--local", "context=/ctx", "--opt", "filename=/ctx/.forge/Dockerfile",
			})
		})
	})
}

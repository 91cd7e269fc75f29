package providers

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
	h "github.com/buildpacks/forge/testhelpers"
)

func TestJavaProvider(t *testing.T) {
	spec.Run(t, "testJavaProvider", testJavaProvider, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testJavaProvider(t *testing.T, when spec.G, it spec.S) {
	provider := &JavaProvider{}

	when("#Detect", func() {
		it("detects a Maven project and records the build tool", func() {
			a, err := app.New("testdata/maven")
			h.AssertNil(t, err)

			result, err := provider.Detect(a, environment.New(nil))
			h.AssertNil(t, err)
			h.AssertEq(t, result.Detected, true)
			h.AssertEq(t, result.Metadata["build-tool"], "maven")
		})

		it("detects a Gradle project and records the build tool", func() {
			a, err := app.New("testdata/gradle")
			h.AssertNil(t, err)

			result, err := provider.Detect(a, environment.New(nil))
			h.AssertNil(t, err)
			h.AssertEq(t, result.Detected, true)
			h.AssertEq(t, result.Metadata["build-tool"], "gradle")
		})

		it("fails loudly on a Gradle wrapper without its build files", func() {
			a, err := app.New("testdata/gradle-invalid")
			h.AssertNil(t, err)

			_, err = provider.Detect(a, environment.New(nil))
			h.AssertNotNil(t, err)
			h.AssertEq(t, plan.IsKind(err, plan.InvalidProjectStructure), true)
			h.AssertErrorContains(t, err, "build.gradle")
		})
	})

	when("Gradle JDK inference", func() {
		it("reads the Gradle version from the wrapper properties", func() {
			a, err := app.New("testdata/gradle")
			h.AssertNil(t, err)

			// gradle 7.x runs on the current default JDK
			setup, err := provider.Setup(a, environment.New(nil), plan.Metadata{"build-tool": "gradle"})
			h.AssertNil(t, err)
			h.AssertEq(t, setup.Pkgs, []nix.Pkg{nix.NewPkg("jdk")})
		})

		it("maps gradle 6 to jdk11 via an environment override", func() {
			a, err := app.New("testdata/gradle")
			h.AssertNil(t, err)

			env := environment.New(map[string]string{"FORGE_GRADLE_VERSION": "6.9"})
			setup, err := provider.Setup(a, env, plan.Metadata{"build-tool": "gradle"})
			h.AssertNil(t, err)
			h.AssertEq(t, setup.Pkgs, []nix.Pkg{nix.NewPkg("jdk11")})
		})

		it("maps pre-6 gradle to jdk8", func() {
			a, err := app.New("testdata/gradle")
			h.AssertNil(t, err)

			env := environment.New(map[string]string{"FORGE_GRADLE_VERSION": "5.6"})
			setup, err := provider.Setup(a, env, plan.Metadata{"build-tool": "gradle"})
			h.AssertNil(t, err)
			h.AssertEq(t, setup.Pkgs, []nix.Pkg{nix.NewPkg("jdk8")})
		})
	})

	when("phases", func() {
		it("builds Maven projects with mvn and configures the spring port", func() {
			a, err := app.New("testdata/maven")
			h.AssertNil(t, err)
			meta := plan.Metadata{"build-tool": "maven"}

			setup, err := provider.Setup(a, environment.New(nil), meta)
			h.AssertNil(t, err)
			h.AssertEq(t, setup.Pkgs, []nix.Pkg{nix.NewPkg("maven"), nix.NewPkg("jdk")})

			build, err := provider.Build(a, environment.New(nil), meta)
			h.AssertNil(t, err)
			h.AssertContains(t, build.Cmds[0], "mvn ")
			h.AssertContains(t, build.Cmds[0], "-DskipTests clean dependency:list install")

			start, err := provider.Start(a, environment.New(nil), meta)
			h.AssertNil(t, err)
			h.AssertEq(t, *start.Cmd, "java -Dserver.port=$PORT $JAVA_OPTS -jar target/*jar")
		})

		it("builds Gradle projects with the wrapper", func() {
			a, err := app.New("testdata/gradle")
			h.AssertNil(t, err)
			meta := plan.Metadata{"build-tool": "gradle"}

			build, err := provider.Build(a, environment.New(nil), meta)
			h.AssertNil(t, err)
			h.AssertEq(t, build.Cmds, []string{"./gradlew build -x check"})

			variables, err := provider.EnvironmentVariables(a, environment.New(nil), meta)
			h.AssertNil(t, err)
			h.AssertContains(t, variables["GRADLE_OPTS"], "-Dorg.gradle.daemon=false")
		})
	})
}

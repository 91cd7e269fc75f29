package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
)

const (
	defaultJDKPkg           = "jdk"
	gradleWrapperProperties = "gradle/wrapper/gradle-wrapper.properties"
)

var gradleDistributionRegex = regexp.MustCompile(`distributionUrl[\S]*gradle-([0-9.]+)`)

// JavaProvider covers Maven and Gradle projects; the build tool found at
// detection time selects the sub-strategy for every later capability.
type JavaProvider struct{}

func (p *JavaProvider) Name() string {
	return "java"
}

func (p *JavaProvider) Detect(a *app.App, _ *environment.Environment) (plan.DetectResult, error) {
	if isMavenApp(a) {
		return plan.DetectResult{Detected: true, Metadata: plan.Metadata{"build-tool": "maven"}}, nil
	}

	if a.IncludesFile("gradlew") {
		// A Gradle wrapper without its required config files is a user
		// configuration error, not a cue to fall through to another provider.
		if err := validateGradleApp(a); err != nil {
			return plan.DetectResult{}, err
		}
		return plan.DetectResult{Detected: true, Metadata: plan.Metadata{"build-tool": "gradle"}}, nil
	}

	return plan.DetectResult{}, nil
}

func (p *JavaProvider) Setup(a *app.App, env *environment.Environment, meta plan.Metadata) (*plan.SetupPhase, error) {
	if meta["build-tool"] == "gradle" {
		jdk, err := gradleJDKPkg(a, env)
		if err != nil {
			return nil, err
		}
		return plan.NewSetupPhase([]nix.Pkg{jdk}), nil
	}
	return plan.NewSetupPhase([]nix.Pkg{nix.NewPkg("maven"), nix.NewPkg(defaultJDKPkg)}), nil
}

func (p *JavaProvider) Build(a *app.App, _ *environment.Environment, meta plan.Metadata) (*plan.BuildPhase, error) {
	if meta["build-tool"] == "gradle" {
		return plan.NewBuildPhase("./gradlew build -x check"), nil
	}

	mvn := "mvn"
	if a.IncludesFile("mvnw") && a.IncludesFile(".mvn/wrapper/maven-wrapper.properties") {
		mvn = "./mvnw"
	}
	return plan.NewBuildPhase(fmt.Sprintf(
		"%s -DoutputFile=target/mvn-dependency-list.log -B -DskipTests clean dependency:list install", mvn)), nil
}

func (p *JavaProvider) Start(a *app.App, _ *environment.Environment, meta plan.Metadata) (*plan.StartPhase, error) {
	if meta["build-tool"] == "gradle" {
		return plan.NewStartPhase(`bash -c "java -Dserver.port=$PORT $JAVA_OPTS -jar ./build/libs/*.jar"`), nil
	}

	portConfig := mavenPortConfig(a)
	if portConfig != "" {
		return plan.NewStartPhase(fmt.Sprintf("java %s $JAVA_OPTS -jar target/*jar", portConfig)), nil
	}
	return plan.NewStartPhase("java $JAVA_OPTS -jar target/*jar"), nil
}

func (p *JavaProvider) EnvironmentVariables(_ *app.App, _ *environment.Environment, meta plan.Metadata) (plan.EnvironmentVariables, error) {
	if meta["build-tool"] != "gradle" {
		return nil, nil
	}
	return plan.EnvironmentVariables{
		"GRADLE_OPTS": "-Dorg.gradle.daemon=false -Dorg.gradle.internal.launcher.welcomeMessageEnabled=false",
	}, nil
}

func isMavenApp(a *app.App) bool {
	for _, f := range []string{"pom.xml", "pom.rb", "pom.scala", "pom.yaml", "pom.yml"} {
		if a.IncludesFile(f) {
			return true
		}
	}
	return a.IncludesDirectory("pom.atom") || a.IncludesDirectory("pom.clj") || a.IncludesDirectory("pom.groovy")
}

func validateGradleApp(a *app.App) error {
	if !a.IncludesFile("build.gradle") && !a.IncludesFile("build.gradle.kts") {
		return plan.NewError(plan.InvalidProjectStructure,
			"Gradle wrapper found but no build.gradle or build.gradle.kts exists at the project root")
	}
	if !a.IncludesFile("settings.gradle") && !a.IncludesFile("settings.gradle.kts") {
		return plan.NewError(plan.InvalidProjectStructure,
			"Gradle wrapper found but no settings.gradle or settings.gradle.kts exists at the project root")
	}
	if !a.IncludesFile(gradleWrapperProperties) {
		return plan.NewError(plan.InvalidProjectStructure,
			"Gradle wrapper found but %s is missing", gradleWrapperProperties)
	}
	return nil
}

// gradleJDKPkg picks the JDK package for the Gradle version in use, resolved
// by priority: FORGE_GRADLE_VERSION, a .gradle-version file, then the
// distributionUrl in the wrapper properties. Gradle 6 tops out at JDK 11 and
// anything older needs JDK 8.
func gradleJDKPkg(a *app.App, env *environment.Environment) (nix.Pkg, error) {
	version := env.GetConfigVariable("GRADLE_VERSION")

	if version == "" && a.IncludesFile(".gradle-version") {
		contents, err := a.ReadFile(".gradle-version")
		if err != nil {
			return nix.Pkg{}, err
		}
		version = contents
	}

	if version == "" {
		contents, err := a.ReadFile(gradleWrapperProperties)
		if err != nil {
			return nix.Pkg{}, err
		}
		if m := gradleDistributionRegex.FindStringSubmatch(contents); m != nil {
			version = strings.TrimSuffix(m[1], ".")
		}
	}

	major, ok := parseMajorVersion(version)
	if !ok {
		return nix.NewPkg(defaultJDKPkg), nil
	}

	switch {
	case major == 6:
		return nix.NewPkg("jdk11"), nil
	case major < 6:
		return nix.NewPkg("jdk8"), nil
	default:
		return nix.NewPkg(defaultJDKPkg), nil
	}
}

func mavenPortConfig(a *app.App) string {
	pom, err := a.ReadFile("pom.xml")
	if err != nil {
		return ""
	}
	if strings.Contains(pom, "<groupId>org.wildfly.swarm") {
		return "-Dswarm.http.port=$PORT"
	}
	if strings.Contains(pom, "<groupId>org.springframework.boot") && strings.Contains(pom, "<artifactId>spring-boot") {
		return "-Dserver.port=$PORT"
	}
	return ""
}

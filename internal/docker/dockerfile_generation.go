package docker

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/buildpacks/forge/internal/app"
	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/plan"
)

const appDir = "/app/"

// CreateDockerfile lowers a build plan into Dockerfile text. It is pure and
// deterministic: the same plan, options and environment always produce
// byte-identical output. Plan validity (e.g. a missing start command) is the
// caller's concern; this function is total over any plan shape.
func CreateDockerfile(p *plan.BuildPlan, env *environment.Environment, opts BuilderOptions) (string, error) {
	setup := plan.SetupPhase{BaseImage: plan.DefaultBaseImage}
	if p.Setup != nil {
		setup = *p.Setup
	}
	var install plan.InstallPhase
	if p.Install != nil {
		install = *p.Install
	}
	var build plan.BuildPhase
	if p.Build != nil {
		build = *p.Build
	}
	var start plan.StartPhase
	if p.Start != nil {
		start = *p.Start
	}

	// A disabled cache means no mounts at all, not anonymous ones.
	cacheKey := opts.CacheKey
	if opts.NoCache || env.IsConfigVariableTruthy("NO_CACHE") {
		cacheKey = ""
	}

	baseImage := setup.BaseImage
	if baseImage == "" {
		baseImage = plan.DefaultBaseImage
	}

	var sections []string
	addSection := func(instructions ...instruction) {
		if text := renderInstructions(instructions); text != "" {
			sections = append(sections, text)
		}
	}

	addSection(
		rawInstruction{fmt.Sprintf("FROM %s", baseImage)},
		rawInstruction{fmt.Sprintf("WORKDIR %s", appDir)},
	)

	// Setup: the environment expression is always copied in ahead of any
	// setup-restricted files.
	setupInstructions := []instruction{
		rawInstruction{"# Setup"},
		copyInstruction{files: append([]string{EnvironmentNixPath}, setup.OnlyIncludeFiles...), appDir: appDir},
		// The expression lands in the workdir under its bare name.
		rawInstruction{"RUN nix-env -if environment.nix"},
	}
	if len(setup.AptPkgs) > 0 {
		// apt packages are unpinned, unlike the Nix environment, so this
		// instruction is a reproducibility risk worth keeping small.
		setupInstructions = append(setupInstructions,
			rawInstruction{fmt.Sprintf("RUN apt-get update && apt-get install -y %s", strings.Join(setup.AptPkgs, " "))})
	}
	for _, cmd := range setup.Cmds {
		setupInstructions = append(setupInstructions, runInstruction{command: cmd})
	}
	addSection(setupInstructions...)

	assetInstructions, err := assetCopyInstructions(p.StaticAssets)
	if err != nil {
		return "", err
	}
	addSection(assetInstructions...)

	addSection(variableInstructions(p.Variables)...)

	// Install: with no declared restriction the whole context comes in here,
	// exactly once.
	installFiles := install.OnlyIncludeFiles
	if installFiles == nil {
		installFiles = []string{"."}
	}
	installInstructions := []instruction{
		rawInstruction{"# Install"},
		copyInstruction{files: installFiles, appDir: appDir},
	}
	installMounts := cacheMounts(cacheKey, install.CacheDirectories)
	for _, cmd := range install.Cmds {
		installInstructions = append(installInstructions, runInstruction{command: cmd, mounts: installMounts})
	}
	addSection(installInstructions...)

	if len(install.Paths) > 0 {
		joined := strings.Join(install.Paths, ":")
		addSection(
			rawInstruction{fmt.Sprintf("ENV PATH %s:$PATH", joined)},
			rawInstruction{fmt.Sprintf(`RUN printf '\nPATH=%s:$PATH' >> /root/.profile`, joined)},
		)
	}

	// Build: suppress a second full-tree copy when install already brought
	// everything in.
	buildFiles := build.OnlyIncludeFiles
	if buildFiles == nil {
		if install.OnlyIncludeFiles != nil {
			buildFiles = []string{"."}
		}
	}
	buildInstructions := []instruction{
		rawInstruction{"# Build"},
		copyInstruction{files: buildFiles, appDir: appDir},
	}
	buildMounts := cacheMounts(cacheKey, build.CacheDirectories)
	for _, cmd := range build.Cmds {
		buildInstructions = append(buildInstructions, runInstruction{command: cmd, mounts: buildMounts})
	}
	addSection(buildInstructions...)

	// Start: either a second stage from the run image, or an ordinary copy
	// into the single stage.
	startInstructions := []instruction{rawInstruction{"# Start"}}
	if start.RunImage != "" {
		startInstructions = append(startInstructions,
			rawInstruction{fmt.Sprintf("FROM %s", start.RunImage)},
			rawInstruction{fmt.Sprintf("WORKDIR %s", appDir)},
		)
		// Build args do not cross a stage boundary, so the variables must be
		// redeclared for them to reach the running container.
		startInstructions = append(startInstructions, variableDeclarations(p.Variables)...)
		startInstructions = append(startInstructions,
			// Slim run images tend to ship without a CA bundle.
			rawInstruction{"COPY --from=0 /etc/ssl/certs /etc/ssl/certs"},
			// RUN true works around moby#37965 on sequential COPYs.
			rawInstruction{"RUN true"},
			copyFromInstruction{stage: "0", files: start.OnlyIncludeFiles, appDir: appDir},
		)
	} else {
		startFiles := start.OnlyIncludeFiles
		if startFiles == nil {
			startFiles = []string{"."}
		}
		startInstructions = append(startInstructions, copyInstruction{files: startFiles, appDir: appDir})
	}
	if start.Cmd != nil {
		startInstructions = append(startInstructions, execCmdInstruction{command: *start.Cmd})
	}
	addSection(startInstructions...)

	return strings.Join(sections, "\n\n") + "\n", nil
}

// variableInstructions declares plan variables as build args and re-exports
// them as runtime environment under a section comment.
func variableInstructions(variables plan.EnvironmentVariables) []instruction {
	decls := variableDeclarations(variables)
	if len(decls) == 0 {
		return nil
	}
	return append([]instruction{rawInstruction{"# Load environment variables"}}, decls...)
}

// variableDeclarations renders the bare ARG + ENV pair, in sorted order for
// determinism.
func variableDeclarations(variables plan.EnvironmentVariables) []instruction {
	if len(variables) == 0 {
		return nil
	}

	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)

	exports := make([]string, 0, len(names))
	for _, name := range names {
		exports = append(exports, fmt.Sprintf("%s=$%s", name, name))
	}

	return []instruction{
		rawInstruction{fmt.Sprintf("ARG %s", strings.Join(names, " "))},
		rawInstruction{fmt.Sprintf("ENV %s", strings.Join(exports, " "))},
	}
}

func assetCopyInstructions(assets map[string]string) ([]instruction, error) {
	if len(assets) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}
	sort.Strings(names)

	instructions := []instruction{rawInstruction{"# Assets"}}
	for _, name := range names {
		if path.IsAbs(name) || strings.Contains(name, "..") {
			return nil, plan.NewError(plan.SynthesisError, "static asset name %q escapes the assets directory", name)
		}
		instructions = append(instructions, rawInstruction{fmt.Sprintf("COPY %s/%s %s%s", ContextAssetsDir, name, app.AssetsDir, name)})
	}
	return instructions, nil
}

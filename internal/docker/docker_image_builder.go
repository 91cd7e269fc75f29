package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/buildpacks/forge/internal/environment"
	"github.com/buildpacks/forge/internal/nix"
	"github.com/buildpacks/forge/internal/plan"
	"github.com/buildpacks/forge/logging"
)

// BackendTemplate describes how to invoke the external image-build engine:
// a command plus argument templates. The placeholders {context}, {dockerfile}
// and {name} are substituted before execution. Backend-specific flags
// (tags, labels, platform, build args) are appended after the template.
type BackendTemplate struct {
	Command string
	Args    []string
	Env     []string
}

// DefaultBackend builds with the docker CLI under BuildKit.
func DefaultBackend() BackendTemplate {
	return BackendTemplate{
		Command: "docker",
		Args:    []string{"build", "{context}", "-f", "{dockerfile}", "-t", "{name}"},
		Env:     []string{"DOCKER_BUILDKIT=1"},
	}
}

func (t BackendTemplate) expand(arg, context, dockerfile, name string) string {
	arg = strings.ReplaceAll(arg, "{context}", context)
	arg = strings.ReplaceAll(arg, "{dockerfile}", dockerfile)
	return strings.ReplaceAll(arg, "{name}", name)
}

// ImageBuilder assembles the build context for a plan and hands it to the
// backend. It owns only directories it created itself: a caller-supplied
// out dir or the current directory is never deleted.
type ImageBuilder struct {
	logger  logging.Logger
	options BuilderOptions
}

func NewImageBuilder(logger logging.Logger, options BuilderOptions) *ImageBuilder {
	return &ImageBuilder{logger: logger, options: options}
}

// CreateImage writes the build context (app copy, Dockerfile, environment
// expression, static assets) and, unless an out dir was requested, invokes
// the build backend. The context cancels a running backend process.
func (b *ImageBuilder) CreateImage(ctx context.Context, appSrc string, p *plan.BuildPlan, env *environment.Environment) error {
	dockerfile, err := CreateDockerfile(p, env, b.options)
	if err != nil {
		return err
	}

	if b.options.PrintDockerfile {
		fmt.Fprintln(b.logger.Writer(), dockerfile)
		return nil
	}

	contextDir, err := b.contextDir(appSrc)
	if err != nil {
		return err
	}
	output := NewOutputDir(contextDir)
	if err := output.EnsureOutputExists(); err != nil {
		return err
	}

	name := b.options.Name
	if name == "" {
		name = uuid.New().String()
	}

	b.logger.Info(p.BuildString())

	if !b.options.CurrentDir && contextDir != appSrc {
		if err := copyDir(appSrc, contextDir); err != nil {
			return errors.Wrap(err, "writing app")
		}
	}
	if err := os.WriteFile(output.AbsolutePath("Dockerfile"), []byte(dockerfile), 0o644); err != nil {
		return errors.Wrap(err, "writing Dockerfile")
	}
	if err := b.writeNixExpression(p, output); err != nil {
		return errors.Wrap(err, "writing environment.nix")
	}
	if err := b.writeAssets(p, contextDir); err != nil {
		return errors.Wrap(err, "writing assets")
	}

	// --out means "give me the context", not "build it".
	if b.options.OutDir != "" {
		b.logger.Infof("Saved build context to %s", contextDir)
		return nil
	}

	cmd := b.backendCommand(ctx, contextDir, output.AbsolutePath("Dockerfile"), name, p)
	backendOut := logging.NewPrefixWriter(b.logger.Writer(), cmd.Args[0])
	cmd.Stdout = backendOut
	cmd.Stderr = backendOut

	b.logger.Debugf("Running %s %s", cmd.Path, strings.Join(cmd.Args[1:], " "))
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "building image")
	}

	b.logger.Infof("Successfully built image %s", name)
	logging.Tip(b.logger, "run it with: docker run -it %s", name)
	return nil
}

func (b *ImageBuilder) contextDir(appSrc string) (string, error) {
	if b.options.OutDir != "" {
		if err := os.MkdirAll(b.options.OutDir, 0o755); err != nil {
			return "", errors.Wrap(err, "creating out directory")
		}
		return b.options.OutDir, nil
	}
	if b.options.CurrentDir {
		return appSrc, nil
	}

	tmp, err := os.MkdirTemp("", "forge-")
	if err != nil {
		return "", errors.Wrap(err, "creating temp build context")
	}
	return tmp, nil
}

func (b *ImageBuilder) backendCommand(ctx context.Context, contextDir, dockerfilePath, name string, p *plan.BuildPlan) *exec.Cmd {
	backend := b.options.Backend
	if backend.Command == "" {
		backend = DefaultBackend()
	}

	args := make([]string, 0, len(backend.Args))
	for _, arg := range backend.Args {
		args = append(args, backend.expand(arg, contextDir, dockerfilePath, name))
	}

	if b.options.Quiet {
		args = append(args, "--quiet")
	}
	if b.options.NoCache {
		args = append(args, "--no-cache")
	}

	variableNames := make([]string, 0, len(p.Variables))
	for variable := range p.Variables {
		variableNames = append(variableNames, variable)
	}
	sort.Strings(variableNames)
	for _, variable := range variableNames {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", variable, p.Variables[variable]))
	}

	for _, tag := range b.options.Tags {
		args = append(args, "-t", tag)
	}
	for _, label := range b.options.Labels {
		args = append(args, "--label", label)
	}
	for _, platform := range b.options.Platform {
		args = append(args, "--platform", platform)
	}

	cmd := exec.CommandContext(ctx, backend.Command, args...)
	cmd.Env = append(os.Environ(), backend.Env...)
	return cmd
}

func (b *ImageBuilder) writeNixExpression(p *plan.BuildPlan, output OutputDir) error {
	var pkgs []nix.Pkg
	if p.Setup != nil {
		pkgs = p.Setup.Pkgs
	}
	expression := nix.CreateNixExpression(pkgs)
	return os.WriteFile(output.AbsolutePath("environment.nix"), []byte(expression), 0o644)
}

func (b *ImageBuilder) writeAssets(p *plan.BuildPlan, contextDir string) error {
	if len(p.StaticAssets) == 0 {
		return nil
	}

	assetsRoot := filepath.Join(contextDir, ContextAssetsDir)
	for name, content := range p.StaticAssets {
		dest := filepath.Join(assetsRoot, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return errors.Wrapf(err, "creating parent directory for asset %s", name)
		}
		if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
			return errors.Wrapf(err, "writing asset %s", name)
		}
	}
	return nil
}

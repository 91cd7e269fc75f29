// Package docker lowers build plans into Dockerfiles and drives an external
// image-build backend over the generated build context.
package docker

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// DotForgeDir holds the generated recipe files inside the build context.
	DotForgeDir = ".forge"

	// EnvironmentNixPath is the context-relative location of the Nix
	// environment expression referenced by the generated Dockerfile.
	EnvironmentNixPath = DotForgeDir + "/environment.nix"

	// ContextAssetsDir is where generated static assets are staged inside
	// the build context before being copied into the image.
	ContextAssetsDir = "assets"
)

// BuilderOptions is the configuration surface of an image build.
type BuilderOptions struct {
	// Name tags the produced image; a generated unique id is used when empty.
	Name string

	// OutDir writes the build context to a persistent location and skips
	// invoking the build backend.
	OutDir string

	// PrintDockerfile emits the Dockerfile to stdout and writes nothing.
	PrintDockerfile bool

	Tags     []string
	Labels   []string
	Quiet    bool
	CacheKey string
	NoCache  bool
	Platform []string

	// CurrentDir reuses the working directory as the build context instead
	// of copying the app into a temp directory.
	CurrentDir bool

	// NoErrorWithoutStart accepts plans with no detected entry point.
	NoErrorWithoutStart bool

	// Backend overrides how the external build engine is invoked.
	Backend BackendTemplate
}

// OutputDir is the build-context directory layout: the app copy at the root
// and the generated recipe files under .forge/.
type OutputDir struct {
	Root string
}

func NewOutputDir(root string) OutputDir {
	return OutputDir{Root: root}
}

// EnsureOutputExists creates the .forge directory inside the context.
func (o OutputDir) EnsureOutputExists() error {
	dir := filepath.Join(o.Root, DotForgeDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s directory", DotForgeDir)
	}
	return nil
}

// AbsolutePath resolves a path relative to the .forge directory.
func (o OutputDir) AbsolutePath(name string) string {
	return filepath.Join(o.Root, DotForgeDir, name)
}

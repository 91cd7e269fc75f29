// Package app is the source-tree handle handed to providers: file existence
// checks, file reads, and glob lookups rooted at the application directory.
package app

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// AssetsDir is the in-image staging directory for generated static assets.
const AssetsDir = "/assets/"

type App struct {
	Source string
}

func New(path string) (*App, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving app source %s", path)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading app source %s", abs)
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("app source %s is not a directory", abs)
	}

	return &App{Source: abs}, nil
}

// IncludesFile reports whether a regular file exists at the given path
// relative to the app root.
func (a *App) IncludesFile(name string) bool {
	fi, err := os.Stat(filepath.Join(a.Source, name))
	return err == nil && fi.Mode().IsRegular()
}

func (a *App) IncludesDirectory(name string) bool {
	fi, err := os.Stat(filepath.Join(a.Source, name))
	return err == nil && fi.IsDir()
}

// FindFiles returns app-relative paths of files in the app root matching the
// given glob pattern (e.g. "*.fsproj").
func (a *App) FindFiles(pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.Source, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "globbing %s", pattern)
	}

	var files []string
	for _, m := range matches {
		rel, err := filepath.Rel(a.Source, m)
		if err != nil {
			return nil, errors.Wrapf(err, "relativizing %s", m)
		}
		files = append(files, rel)
	}
	return files, nil
}

func (a *App) ReadFile(name string) (string, error) {
	contents, err := os.ReadFile(filepath.Join(a.Source, name))
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", name)
	}
	return string(contents), nil
}

// ReadTOML decodes a TOML file at the given app-relative path into v.
func (a *App) ReadTOML(name string, v interface{}) error {
	contents, err := a.ReadFile(name)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(contents, v); err != nil {
		return errors.Wrapf(err, "parsing %s", name)
	}
	return nil
}

package docker

import (
	"fmt"
	"strings"
)

// The Dockerfile is assembled from typed instruction records rendered by a
// single serialization pass. Records render to "" when they have nothing to
// emit (e.g. a copy with no files), and empty lines are dropped at render
// time, which keeps suppression rules independently testable.

type instruction interface {
	render() string
}

type rawInstruction struct {
	text string
}

func (i rawInstruction) render() string { return i.text }

// copyInstruction copies context files into the image. An empty file list
// renders nothing: the effective copy set was already handled elsewhere.
type copyInstruction struct {
	files  []string
	appDir string
}

func (i copyInstruction) render() string {
	if len(i.files) == 0 {
		return ""
	}
	return fmt.Sprintf("COPY %s %s", strings.Join(i.files, " "), i.appDir)
}

// copyFromInstruction copies from a prior build stage into the final run
// image. With no files declared, the whole first-stage app directory is
// carried over.
type copyFromInstruction struct {
	stage  string
	files  []string
	appDir string
}

func (i copyFromInstruction) render() string {
	if len(i.files) == 0 {
		return fmt.Sprintf("COPY --from=%s %s %s", i.stage, i.appDir, i.appDir)
	}

	files := make([]string, 0, len(i.files))
	for _, f := range i.files {
		files = append(files, strings.ReplaceAll(f, "./", i.appDir))
	}
	return fmt.Sprintf("COPY --from=%s %s %s", i.stage, strings.Join(files, " "), i.appDir)
}

// runInstruction executes a shell command, optionally under cache mounts.
type runInstruction struct {
	command string
	mounts  string
}

func (i runInstruction) render() string {
	if i.mounts == "" {
		return fmt.Sprintf("RUN %s", i.command)
	}
	return fmt.Sprintf("RUN %s %s", i.mounts, i.command)
}

// execCmdInstruction renders the exec-form CMD. Embedded double quotes are
// escaped so re-parsing the instruction yields the original command.
type execCmdInstruction struct {
	command string
}

func (i execCmdInstruction) render() string {
	return fmt.Sprintf("CMD [\"%s\"]", strings.ReplaceAll(i.command, `"`, `\"`))
}

// cacheMounts renders one BuildKit mount flag per cache directory, keyed by
// the sanitized cache key + directory pair. An empty cache key disables
// caching entirely: no anonymous or partial mounts.
func cacheMounts(cacheKey string, cacheDirectories []string) string {
	if cacheKey == "" || len(cacheDirectories) == 0 {
		return ""
	}

	mounts := make([]string, 0, len(cacheDirectories))
	for _, dir := range cacheDirectories {
		target := strings.ReplaceAll(dir, "~", "/root")
		id := sanitizeCacheKey(fmt.Sprintf("%s-%s", cacheKey, target))
		mounts = append(mounts, fmt.Sprintf("--mount=type=cache,id=%s,target=%s", id, target))
	}
	return strings.Join(mounts, " ")
}

func renderInstructions(instructions []instruction) string {
	var lines []string
	for _, in := range instructions {
		if line := in.render(); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

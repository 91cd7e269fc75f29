// Package providers contains the language strategies consulted during plan
// generation, in their fixed registration order.
package providers

import (
	"strings"

	"github.com/Masterminds/semver"

	"github.com/buildpacks/forge/internal/plan"
)

// Registry returns the provider chain in priority order. More specific
// detectors come first; the static-file fallback is always last. The
// returned slice is freshly allocated so callers cannot mutate the order
// seen by other compilations.
func Registry() []plan.Provider {
	return []plan.Provider{
		&FSharpProvider{},
		&ClojureProvider{},
		&GolangProvider{},
		&JavaProvider{},
		&StaticfileProvider{},
	}
}

// parseMajorVersion extracts the major version from a free-form version
// string ("11", "7.4.2", quoted or padded variants). Version inference is
// advisory: any unparsable input reports ok=false and the caller falls back
// to its default, never an error.
func parseMajorVersion(raw string) (int64, bool) {
	cleaned := strings.Trim(strings.TrimSpace(raw), `"'`)
	if cleaned == "" {
		return 0, false
	}
	v, err := semver.NewVersion(cleaned)
	if err != nil {
		return 0, false
	}
	return v.Major(), true
}

// Package environment provides the read-only key/value overlay visible to
// providers: explicit FORGE_* configuration variables layered over a
// snapshot of the OS environment taken at invocation time.
package environment

import (
	"fmt"
	"os"
	"strings"
)

const configPrefix = "FORGE_"

type Environment struct {
	variables map[string]string
}

func New(variables map[string]string) *Environment {
	if variables == nil {
		variables = map[string]string{}
	}
	return &Environment{variables: variables}
}

// FromEnvs builds an environment from explicit KEY=VALUE overrides plus the
// current OS environment. Explicit overrides win. A bare KEY (no '=') pulls
// the value from the OS environment, matching `docker build --build-arg KEY`
// behavior.
func FromEnvs(envs []string) (*Environment, error) {
	variables := map[string]string{}
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, configPrefix) {
			variables[name] = value
		}
	}

	for _, env := range envs {
		name, value, found := strings.Cut(env, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid environment variable %q", env)
		}
		if found {
			variables[name] = value
		} else if fromOS, ok := os.LookupEnv(name); ok {
			variables[name] = fromOS
		}
	}

	return New(variables), nil
}

// GetVariable returns the raw variable value, or "" when unset.
func (e *Environment) GetVariable(name string) string {
	return e.variables[name]
}

// GetConfigVariable resolves a FORGE_-prefixed configuration variable by its
// unprefixed name (e.g. "JDK_VERSION" reads FORGE_JDK_VERSION).
func (e *Environment) GetConfigVariable(name string) string {
	return e.GetVariable(configPrefix + name)
}

func (e *Environment) IsConfigVariableTruthy(name string) bool {
	v := strings.ToLower(strings.TrimSpace(e.GetConfigVariable(name)))
	return v == "1" || v == "true"
}

// SetVariable records an additional override. Used by descriptor loading
// before the environment is handed to providers; providers never mutate.
func (e *Environment) SetVariable(name, value string) {
	e.variables[name] = value
}

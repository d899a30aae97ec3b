// Package config holds the typemap engine's tunable limits and
// defaults. Callers normally use Default(); an optional YAML manifest
// can override individual fields (see Load).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// MaxScopeDefault is the bounded scope-stack depth from spec.md
// section 3 ("Scopes form a stack of bounded depth MAX_SCOPE (spec
// value: 32)").
const MaxScopeDefault = 32

// DefaultTypeNameDefault is the sentinel default type, e.g. SWIGTYPE.
const DefaultTypeNameDefault = "SWIGTYPE"

// Config holds the engine's runtime configuration.
type Config struct {
	// MaxScope bounds the depth of the scope stack.
	MaxScope int `yaml:"max_scope"`

	// DefaultTypeName names the catch-all sentinel type used when no
	// specific or fallback type matches (spec.md section 4.4).
	DefaultTypeName string `yaml:"default_type_name"`

	// Verbose is read from the configuration file and carried here;
	// neither the CLI nor the introspection sidecar consults it, so it
	// changes no output.
	Verbose bool `yaml:"verbose"`
}

// Default returns the engine's built-in configuration.
func Default() Config {
	return Config{
		MaxScope:        MaxScopeDefault,
		DefaultTypeName: DefaultTypeNameDefault,
	}
}

// Load reads a YAML configuration manifest from path, applying it on
// top of Default(). A missing file is not an error; Default() is
// returned unchanged, mirroring the teacher's tolerant config-loading
// convention in internal/ext (a project with no funxy.yaml is valid).
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxScope <= 0 {
		cfg.MaxScope = MaxScopeDefault
	}
	if cfg.DefaultTypeName == "" {
		cfg.DefaultTypeName = DefaultTypeNameDefault
	}
	return cfg, nil
}

//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the module embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the module version with surrounding whitespace removed.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, the configuration directory name, and
	// the include search path environment variable.
	Name = "inflate"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Declarative node-tree document inflater"
)

// EnvPrefix returns the prefix of environment variables recognized by the
// project, for example "INFLATE_PATH".
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }

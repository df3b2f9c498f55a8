// Package cmd implements the inflate, fmt, query, and init subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It also names the configuration block inside
	// that file.
	ConfigIdentifier = "config"
)

// Package cli contains the command line interface for inflate.
//
// # Usage
//
// With no subcommand, the named documents are inflated and the result is
// printed:
//
//	inflate ui.node
//	inflate --format=tree defs.node ui.node
//	inflate -I ./lib --format=json - < ui.node
//
// The fmt subcommand rewrites documents in another syntax without inflating
// them, and query evaluates an expression against the inflated result:
//
//	inflate fmt yaml ui.node
//	inflate query 'find("ok").props.caption' ui.node
//
// # Configuration
//
// Flag defaults are read from two files in the user configuration directory
// (for example ~/.config/inflate): config.json, and config written in the node
// syntax. The init subcommand writes the current flag values to the latter:
//
//	config{
//	  log-level{debug}
//	  include-path{ /usr/share/inflate }
//	}
//
// Command-line flags override both files.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize and indent log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o inflate .
//
// It adds two flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/inflate/pprof)
package cli

// Package profile starts optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling support is compiled in only with the "pprof" build tag. Without
// it, [Modes] is empty and [Profiler.Start] always returns a no-op stopper,
// so callers never need their own build constraints.
//
//	go build -tags pprof ./...
//	inflate --pprof-mode cpu --pprof-dir ./profiles ui.node
//
// Profiles are written to the configured directory and can be inspected
// with "go tool pprof".
package profile

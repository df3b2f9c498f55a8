// Package log wraps [log/slog] with a small, value-typed [Logger] that adds a
// TRACE level, named time layouts, and optional colorized output.
//
// A zero [Logger] discards everything, so components may embed one without
// checking whether a logger was configured.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//
//	logger.Info("template defined", slog.String("name", "Btn"))
//
// The package also maintains a default logger used by the package-level
// functions [Debug], [Info], [Warn], and [Error]. It is reconfigured with
// [Config] and retrieved with [Default].
package log

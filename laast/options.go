package laast

import "log/slog"

// DirOptions configures ReadDir.
type DirOptions struct {
	// Path is the root directory to scan for source files.
	// If empty, current directory is used.
	Path string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB. Negative disables the limit.
	MaxBytes int64

	// Logger receives per-file warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// CompareOptions configures Compare.
type CompareOptions struct {
	// Oracle computes pair distances.
	// If nil, the in-process tree edit distance is used.
	Oracle DistanceOracle

	// Jobs is the number of pairs compared in parallel.
	// If 0, defaults to number of CPUs.
	Jobs int

	// Logger receives progress events. Defaults to slog.Default().
	Logger *slog.Logger
}

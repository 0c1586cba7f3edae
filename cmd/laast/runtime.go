package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/laast/config"
	"github.com/arjunmahishi/laast/laast"
	"github.com/arjunmahishi/laast/logger"
	"github.com/arjunmahishi/laast/output"
	"github.com/arjunmahishi/laast/ted"
)

// commonFlags are accepted by every command that builds documents.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML config file",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format: json, text",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "minimize JSON output",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on source files with syntax errors",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, warn, error",
		},
	}
}

// compareFlags are accepted by commands that compute distances.
func compareFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of parallel workers",
		},
		&cli.StringFlag{
			Name:  "ted-binary",
			Usage: "external tree edit distance executable (default: in-process)",
		},
		&cli.DurationFlag{
			Name:  "ted-timeout",
			Usage: "timeout for each external distance call",
		},
	}
}

// env bundles everything a command needs.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	builder *laast.Builder
	oracle  laast.DistanceOracle
	out     *output.Writer
}

// setup loads configuration and applies flags explicitly set on cmd.
func setup(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
	}
	if cmd.IsSet("compact") {
		cfg.Output.Compact = cmd.Bool("compact")
	}
	if cmd.IsSet("strict") {
		cfg.Strict = cmd.Bool("strict")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("jobs") {
		cfg.Jobs = cmd.Int("jobs")
	}
	if cmd.IsSet("max-bytes") {
		cfg.MaxBytes = cmd.Int64("max-bytes")
	}
	if cmd.IsSet("ted-binary") {
		cfg.TED.Binary = cmd.String("ted-binary")
	}
	if cmd.IsSet("ted-timeout") {
		cfg.TED.Timeout = cmd.Duration("ted-timeout")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, nil)

	taxonomy := laast.DefaultTaxonomy()
	if len(cfg.Taxonomy.Types) > 0 || len(cfg.Taxonomy.Noise) > 0 {
		taxonomy = taxonomy.Extend(cfg.Taxonomy.Types, cfg.Taxonomy.Noise)
	}

	var oracle laast.DistanceOracle = ted.Oracle{}
	if cfg.TED.Binary != "" {
		oracle = &laast.ExecOracle{
			Path:    cfg.TED.Binary,
			Timeout: cfg.TED.Timeout,
		}
	}

	return &env{
		cfg:     cfg,
		logger:  log,
		builder: laast.NewBuilder(&laast.TreeSitter{Strict: cfg.Strict}, taxonomy),
		oracle:  oracle,
		out: output.New(output.Config{
			Format:  output.Format(cfg.Output.Format),
			Compact: cfg.Output.Compact,
			Output:  stdout(cmd),
		}),
	}, nil
}

// stdout returns the writer results go to.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/laast/laast"
)

func statsCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "path",
			Usage: "directory to read source files from",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Usage: "skip files larger than this",
		},
	}
	flags = append(flags, commonFlags()...)
	flags = append(flags, compareFlags()...)

	return &cli.Command{
		Name:      "stats",
		Usage:     "pairwise edit distance statistics of a set of source files",
		ArgsUsage: "[FILE...]",
		Description: "Compare every pair of source files and report min, max and average\n" +
			"tree edit distance between their language-agnostic trees.\n\n" +
			"Examples:\n" +
			"  laast stats --path examples/hello-world\n" +
			"  laast stats main.go main.py --format text",
		Flags:  flags,
		Action: runStats,
	}
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	path := cmd.String("path")
	files := cmd.Args().Slice()
	if path != "" && len(files) > 0 {
		return errors.New("use --path or file arguments, not both")
	}

	var docs []*laast.Document
	if len(files) > 0 {
		docs, err = buildFiles(ctx, e, files)
	} else {
		if path == "" {
			path = "."
		}
		docs, err = e.builder.ReadDir(ctx, laast.DirOptions{
			Path:     path,
			Jobs:     e.cfg.Jobs,
			MaxBytes: e.cfg.MaxBytes,
			Logger:   e.logger,
		})
	}
	if err != nil {
		return err
	}

	report, err := laast.Compare(ctx, docs, laast.CompareOptions{
		Oracle: e.oracle,
		Jobs:   e.cfg.Jobs,
		Logger: e.logger,
	})
	if err != nil {
		return err
	}

	if e.cfg.Output.Format == "text" {
		return e.out.Write(report.Similarity)
	}
	return e.out.Write(report)
}

func buildFiles(ctx context.Context, e *env, files []string) ([]*laast.Document, error) {
	docs := make([]*laast.Document, 0, len(files))
	for _, f := range files {
		doc, err := e.builder.FromFile(ctx, f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func distanceCommand() *cli.Command {
	flags := append(commonFlags(), compareFlags()...)
	return &cli.Command{
		Name:      "distance",
		Usage:     "tree edit distance between two source files",
		ArgsUsage: "FILE FILE",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("distance needs exactly 2 files, got %d", cmd.NArg())
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			docs, err := buildFiles(ctx, e, cmd.Args().Slice())
			if err != nil {
				return err
			}
			report, err := laast.Compare(ctx, docs, laast.CompareOptions{
				Oracle: e.oracle,
				Jobs:   1,
				Logger: e.logger,
			})
			if err != nil {
				return err
			}
			return e.out.Write(report.Pairs[0].Distance)
		},
	}
}

func treeCommand() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "print the language-agnostic tree of a source file",
		ArgsUsage: "FILE",
		Flags:     commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, e, err := singleDocument(ctx, cmd)
			if err != nil {
				return err
			}
			if e.cfg.Output.Format == "text" {
				return e.out.Write(indentTree(doc.Tree))
			}
			return e.out.Write(doc)
		},
	}
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "print the bracket notation of a source file's tree",
		ArgsUsage: "FILE",
		Flags:     commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			doc, e, err := singleDocument(ctx, cmd)
			if err != nil {
				return err
			}
			if e.cfg.Output.Format == "text" {
				return e.out.Write(doc.Encoding())
			}
			return e.out.Write(map[string]string{
				"checksum":    doc.Checksum,
				"fingerprint": fmt.Sprintf("%016x", doc.Fingerprint()),
				"encoding":    doc.Encoding(),
			})
		},
	}
}

func singleDocument(ctx context.Context, cmd *cli.Command) (*laast.Document, *env, error) {
	if cmd.NArg() != 1 {
		return nil, nil, fmt.Errorf("%s needs exactly 1 file, got %d", cmd.Name, cmd.NArg())
	}
	e, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	doc, err := e.builder.FromFile(ctx, cmd.Args().First())
	if err != nil {
		return nil, nil, err
	}
	return doc, e, nil
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list supported languages and their file extensions",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, lang := range laast.Languages() {
				fmt.Fprintf(stdout(cmd), "%s\t%s\n", lang, strings.Join(lang.Extensions(), " "))
			}
			return nil
		},
	}
}

// indentTree renders one node type per line, indented by depth.
func indentTree(n *laast.Node) string {
	var sb strings.Builder
	var walk func(*laast.Node, int)
	walk = func(n *laast.Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.Type())
		sb.WriteByte('\n')
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return sb.String()
}

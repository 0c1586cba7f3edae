package laast

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
)

const defaultMaxBytes = 2 * 1024 * 1024

// ReadDir builds a document for every supported source file below
// opts.Path. Files that cannot be read or parsed are logged and skipped.
// Documents are returned sorted by path.
func (b *Builder) ReadDir(ctx context.Context, opts DirOptions) ([]*Document, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read dir: %s is not a directory", opts.Path)
	}

	sc := newScanner(scannerConfig{
		root:     opts.Path,
		maxBytes: opts.MaxBytes,
	})
	files, err := sc.collect()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []*Document{}, nil
	}

	docs := runDocumentWorkers(ctx, b, files, opts.Jobs, opts.Logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	opts.Logger.Debug("ingest.done", "path", opts.Path, "files", len(files), "documents", len(docs))
	return docs, nil
}

// runDocumentWorkers parses files on a pool of jobs workers.
func runDocumentWorkers(
	ctx context.Context, b *Builder, files []fileJob, jobs int, logger *slog.Logger,
) []*Document {
	results := make(chan *Document, 128)
	jobQueue := make(chan fileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		for job := range jobQueue {
			if ctx.Err() != nil {
				continue
			}
			doc, err := buildFromJob(ctx, b, job)
			if err != nil {
				logger.Warn("ingest.skip", "path", job.displayPath, "err", err)
				continue
			}
			results <- doc
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var docs []*Document
	for doc := range results {
		docs = append(docs, doc)
	}
	return docs
}

func buildFromJob(ctx context.Context, b *Builder, job fileJob) (*Document, error) {
	source, err := os.ReadFile(job.absPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := b.FromSource(ctx, job.language, source)
	if err != nil {
		return nil, err
	}
	doc.Path = job.displayPath
	return doc, nil
}

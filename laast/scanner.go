package laast

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// defaultIgnoreDirs returns the default list of directories to ignore.
func defaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":          {},
		".hg":           {},
		".svn":          {},
		".jj":           {},
		"node_modules":  {},
		"vendor":        {},
		"dist":          {},
		"build":         {},
		"target":        {},
		".venv":         {},
		"__pycache__":   {},
		".mypy_cache":   {},
		".pytest_cache": {},
		".next":         {},
		".cache":        {},
		"coverage":      {},
	}
}

// fileJob is a source file waiting to be parsed.
type fileJob struct {
	absPath     string
	displayPath string
	language    Language
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	root       string
	ignoreDirs map[string]struct{}
	maxBytes   int64
}

// scanner discovers source files in any supported language.
type scanner struct {
	cfg scannerConfig
}

func newScanner(cfg scannerConfig) *scanner {
	if cfg.ignoreDirs == nil {
		cfg.ignoreDirs = defaultIgnoreDirs()
	}
	return &scanner{cfg: cfg}
}

// collect finds all supported files below the root, in walk order.
func (s *scanner) collect() ([]fileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var jobs []fileJob
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, ok := s.cfg.ignoreDirs[d.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		language, err := LanguageForPath(d.Name())
		if err != nil {
			return nil
		}

		if s.cfg.maxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.maxBytes {
				return nil
			}
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}

		jobs = append(jobs, fileJob{
			absPath:     path,
			displayPath: filepath.ToSlash(rel),
			language:    language,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

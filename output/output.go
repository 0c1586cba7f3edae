// Package output provides result formatting for the laast CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Format selects how values are written.
type Format string

const (
	JSON Format = "json"
	Text Format = "text"
)

// Writer handles structured output.
type Writer struct {
	out     io.Writer
	format  Format
	encoder *json.Encoder
}

// Config holds output configuration.
type Config struct {
	Format  Format
	Compact bool
	Output  io.Writer
}

// New creates a new output Writer.
func New(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Format == "" {
		cfg.Format = JSON
	}

	enc := json.NewEncoder(cfg.Output)
	enc.SetEscapeHTML(false)
	if !cfg.Compact {
		enc.SetIndent("", "  ")
	}

	return &Writer{
		out:     cfg.Output,
		format:  cfg.Format,
		encoder: enc,
	}
}

// Write outputs v. In text mode values implementing fmt.Stringer are written
// with their String method and everything else with %v.
func (w *Writer) Write(v any) error {
	if w.format == JSON {
		return w.encoder.Encode(v)
	}

	var s string
	if st, ok := v.(fmt.Stringer); ok {
		s = st.String()
	} else {
		s = fmt.Sprintf("%v", v)
	}
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, err := io.WriteString(w.out, s)
	return err
}

// WriteError writes an error as JSON to w.
func WriteError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(map[string]string{
		"error": err.Error(),
	})
}

package laast

import (
	"fmt"
	"strings"
)

// UnsupportedLanguageError is returned when a language tag or file extension
// is not one of the supported languages.
type UnsupportedLanguageError struct {
	Language  string
	Extension string
	Path      string
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Extension != "" {
		return fmt.Sprintf("%q is not a supported extension", e.Extension)
	}
	if e.Path != "" {
		return fmt.Sprintf("%q has no extension", e.Path)
	}
	return fmt.Sprintf("%q is not a supported language", e.Language)
}

// ParseError is returned when the parser cannot produce a syntax tree.
type ParseError struct {
	Language Language
	Path     string
	Err      error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("parse ")
	sb.WriteString(string(e.Language))
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyBatchError is returned when similarity is requested for fewer than
// two documents.
type EmptyBatchError struct {
	Count int
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("similarity needs at least 2 documents, got %d", e.Count)
}

// OracleError is returned when the distance oracle fails or answers with
// something that is not a distance.
type OracleError struct {
	Op     string
	Output string
	Err    error
}

func (e *OracleError) Error() string {
	msg := "distance oracle: " + e.Op
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += " (output: " + out + ")"
	}
	return msg
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// PairError identifies the document pair whose comparison failed.
type PairError struct {
	I, J int
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("compare documents %d and %d: %v", e.I, e.J, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}

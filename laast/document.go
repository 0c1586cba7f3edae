package laast

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// Document is the LAAST of one source file together with its language and
// the checksum of the exact bytes it was built from.
type Document struct {
	Language Language `json:"language"`
	Checksum string   `json:"checksum"`
	Path     string   `json:"path,omitempty"`
	Tree     *Node    `json:"tree"`
}

// Encoding returns the bracket notation of the document's tree.
func (d *Document) Encoding() string {
	return Encode(d.Tree)
}

// Fingerprint returns the hash of the document's tree encoding.
func (d *Document) Fingerprint() uint64 {
	return Fingerprint(d.Tree)
}

// Label returns a short human-readable name for the document.
func (d *Document) Label() string {
	if d.Path != "" {
		return d.Path
	}
	short := d.Checksum
	if len(short) > 12 {
		short = short[:12]
	}
	return string(d.Language) + "@" + short
}

// Checksum returns the SHA-256 hex digest of source.
func Checksum(source []byte) string {
	h := sha256.Sum256(source)
	return hex.EncodeToString(h[:])
}

// Builder constructs documents.
type Builder struct {
	parser   Parser
	taxonomy *Taxonomy
}

// NewBuilder returns a Builder. A nil parser selects tree-sitter and a nil
// taxonomy selects DefaultTaxonomy.
func NewBuilder(parser Parser, taxonomy *Taxonomy) *Builder {
	if parser == nil {
		parser = &TreeSitter{}
	}
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Builder{parser: parser, taxonomy: taxonomy}
}

// Taxonomy returns the taxonomy used by b.
func (b *Builder) Taxonomy() *Taxonomy {
	return b.taxonomy
}

// FromSource parses and canonicalizes source written in language.
func (b *Builder) FromSource(ctx context.Context, language Language, source []byte) (*Document, error) {
	if !language.Valid() {
		return nil, &UnsupportedLanguageError{Language: string(language)}
	}

	checksum := Checksum(source)

	root, err := b.parser.Parse(ctx, language, source)
	if err != nil {
		return nil, err
	}

	tree, ok := b.taxonomy.Canonicalize(root)
	if !ok {
		return nil, &ParseError{Language: language, Err: fmt.Errorf("root node %q is noise", root.Kind)}
	}

	return &Document{
		Language: language,
		Checksum: checksum,
		Tree:     tree,
	}, nil
}

// FromFile reads path and builds a document, inferring the language from the
// file extension.
func (b *Builder) FromFile(ctx context.Context, path string) (*Document, error) {
	language, err := LanguageForPath(path)
	if err != nil {
		return nil, err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := b.FromSource(ctx, language, source)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.Path == "" {
			perr.Path = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

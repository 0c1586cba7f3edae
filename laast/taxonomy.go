package laast

// defaultTypes maps grammar-specific node kinds onto the canonical kinds
// shared by every supported language.
var defaultTypes = map[string]string{
	"compilation_unit": "unit",
	"module":           "unit",
	"program":          "unit",
	"source_file":      "unit",

	"formal_parameters": "parameters",
	"method_parameters": "parameters",
	"parameter_list":    "parameters",

	"body_statement":  "block",
	"statement_block": "block",

	"function_declaration":     "function_definition",
	"function_item":            "function_definition",
	"local_function_statement": "function_definition",
	"method":                   "function_definition",
	"method_declaration":       "function_definition",
}

// defaultNoise lists punctuation kinds. Punctuation varies heavily between
// languages and would otherwise deflate cross-language similarity.
var defaultNoise = []string{
	"(", ")", ".", ";", "!", "[", "]", "{", "}", `"`, "'", ":",
}

// Taxonomy holds the kind mapping and the noise set used by the canonicalizer.
// A Taxonomy is never modified after construction and is safe to share
// between goroutines.
type Taxonomy struct {
	types map[string]string
	noise map[string]struct{}
}

// DefaultTaxonomy returns the built-in taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(defaultTypes, defaultNoise)
}

// NewTaxonomy builds a taxonomy from a kind mapping and a noise list.
// The inputs are copied.
func NewTaxonomy(types map[string]string, noise []string) *Taxonomy {
	t := &Taxonomy{
		types: make(map[string]string, len(types)),
		noise: make(map[string]struct{}, len(noise)),
	}
	for raw, canonical := range types {
		t.types[raw] = canonical
	}
	for _, kind := range noise {
		t.noise[kind] = struct{}{}
	}
	return t
}

// Extend returns a new taxonomy containing t's entries plus the given ones.
// Entries in types override existing mappings for the same raw kind.
func (t *Taxonomy) Extend(types map[string]string, noise []string) *Taxonomy {
	merged := make(map[string]string, len(t.types)+len(types))
	for raw, canonical := range t.types {
		merged[raw] = canonical
	}
	for raw, canonical := range types {
		merged[raw] = canonical
	}

	kinds := make([]string, 0, len(t.noise)+len(noise))
	for kind := range t.noise {
		kinds = append(kinds, kind)
	}
	kinds = append(kinds, noise...)

	return NewTaxonomy(merged, kinds)
}

// CanonicalKind returns the canonical kind for raw, or raw itself when the
// taxonomy has no entry for it.
func (t *Taxonomy) CanonicalKind(raw string) string {
	if canonical, ok := t.types[raw]; ok {
		return canonical
	}
	return raw
}

// IsNoise reports whether nodes of the given kind are discarded.
func (t *Taxonomy) IsNoise(raw string) bool {
	_, ok := t.noise[raw]
	return ok
}

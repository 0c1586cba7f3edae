package laast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalKind(t *testing.T) {
	tax := DefaultTaxonomy()

	tests := []struct {
		raw  string
		want string
	}{
		{"compilation_unit", "unit"},
		{"module", "unit"},
		{"program", "unit"},
		{"source_file", "unit"},
		{"formal_parameters", "parameters"},
		{"method_parameters", "parameters"},
		{"parameter_list", "parameters"},
		{"body_statement", "block"},
		{"statement_block", "block"},
		{"function_declaration", "function_definition"},
		{"function_item", "function_definition"},
		{"local_function_statement", "function_definition"},
		{"method", "function_definition"},
		{"method_declaration", "function_definition"},
		{"identifier", "identifier"},
		{"for_statement", "for_statement"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			require.Equal(t, tc.want, tax.CanonicalKind(tc.raw))
		})
	}
}

func TestIsNoise(t *testing.T) {
	tax := DefaultTaxonomy()

	for _, kind := range []string{"(", ")", ".", ";", "!", "[", "]", "{", "}", `"`, "'", ":"} {
		require.True(t, tax.IsNoise(kind), "expected %q to be noise", kind)
	}
	for _, kind := range []string{"identifier", "=", "->", ",", "unit", "(("} {
		require.False(t, tax.IsNoise(kind), "expected %q not to be noise", kind)
	}
}

func TestTaxonomyExtend(t *testing.T) {
	base := DefaultTaxonomy()
	ext := base.Extend(
		map[string]string{"lambda": "function_definition", "module": "file"},
		[]string{","},
	)

	require.Equal(t, "function_definition", ext.CanonicalKind("lambda"))
	require.Equal(t, "file", ext.CanonicalKind("module"))
	require.Equal(t, "unit", ext.CanonicalKind("program"))
	require.True(t, ext.IsNoise(","))
	require.True(t, ext.IsNoise(";"))

	// The receiver is left untouched.
	require.Equal(t, "lambda", base.CanonicalKind("lambda"))
	require.Equal(t, "unit", base.CanonicalKind("module"))
	require.False(t, base.IsNoise(","))
}

func TestNewTaxonomyCopiesInput(t *testing.T) {
	types := map[string]string{"a": "b"}
	noise := []string{";"}
	tax := NewTaxonomy(types, noise)

	types["a"] = "c"
	noise[0] = "x"

	require.Equal(t, "b", tax.CanonicalKind("a"))
	require.True(t, tax.IsNoise(";"))
	require.False(t, tax.IsNoise("x"))
}

package laast

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func containsType(n *Node, typ string) bool {
	if n.Type() == typ {
		return true
	}
	for _, c := range n.Children {
		if containsType(c, typ) {
			return true
		}
	}
	return false
}

func TestChecksum(t *testing.T) {
	require.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Checksum([]byte("hello")),
	)
	require.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Checksum(nil),
	)

	src := []byte("package main\n")
	flipped := append([]byte{}, src...)
	flipped[0] ^= 0x01
	require.Equal(t, Checksum(src), Checksum(append([]byte{}, src...)))
	require.NotEqual(t, Checksum(src), Checksum(flipped))
}

func TestFromSourceUnsupportedLanguage(t *testing.T) {
	called := false
	parser := ParserFunc(func(context.Context, Language, []byte) (*SyntaxNode, error) {
		called = true
		return leaf("unit"), nil
	})

	b := NewBuilder(parser, nil)
	doc, err := b.FromSource(context.Background(), Language("cobol"), []byte("DISPLAY 'HI'."))
	require.Nil(t, doc)

	var langErr *UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
	require.Equal(t, "cobol", langErr.Language)
	require.False(t, called, "parser must not run for unsupported languages")
}

func TestFromSourceParseFailure(t *testing.T) {
	errBad := errors.New("bad input")
	parser := ParserFunc(func(_ context.Context, lang Language, _ []byte) (*SyntaxNode, error) {
		return nil, &ParseError{Language: lang, Err: errBad}
	})

	_, err := NewBuilder(parser, nil).FromSource(context.Background(), Go, []byte("x"))
	require.ErrorIs(t, err, errBad)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, Go, parseErr.Language)
}

func TestFromSourceUsesTaxonomy(t *testing.T) {
	parser := ParserFunc(func(context.Context, Language, []byte) (*SyntaxNode, error) {
		return branch("program", branch("lambda", leaf("(")), leaf(";")), nil
	})
	tax := DefaultTaxonomy().Extend(map[string]string{"lambda": "function_definition"}, nil)

	src := []byte("x => x;")
	doc, err := NewBuilder(parser, tax).FromSource(context.Background(), JavaScript, src)
	require.NoError(t, err)
	require.Equal(t, JavaScript, doc.Language)
	require.Equal(t, Checksum(src), doc.Checksum)
	require.Equal(t, "{unit{function_definition}}", doc.Encoding())
	require.Empty(t, doc.Path)
	require.Equal(t, "javascript@"+doc.Checksum[:12], doc.Label())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	goFile := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(goFile, []byte("package main\n\nfunc main() {}\n"), 0644))

	txtFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtFile, []byte("hello"), 0644))

	b := NewBuilder(nil, nil)

	doc, err := b.FromFile(context.Background(), goFile)
	require.NoError(t, err)
	require.Equal(t, Go, doc.Language)
	require.Equal(t, goFile, doc.Path)
	require.Equal(t, "unit", doc.Tree.Type())

	_, err = b.FromFile(context.Background(), txtFile)
	var langErr *UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
	require.Equal(t, "txt", langErr.Extension)

	_, err = b.FromFile(context.Background(), filepath.Join(dir, "missing.py"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTreeSitterHelloWorlds(t *testing.T) {
	tests := []struct {
		lang   Language
		source string
	}{
		{CSharp, "class Program { static void Main() { System.Console.WriteLine(\"hello world\"); } }\n"},
		{Go, "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hello world\")\n}\n"},
		{Java, "class Main { public static void main(String[] args) { System.out.println(\"hello world\"); } }\n"},
		{JavaScript, "function main() {\n  console.log(\"hello world\");\n}\n"},
		{Python, "def main():\n    print(\"hello world\")\n"},
		{Ruby, "def main\n  puts \"hello world\"\nend\n"},
		{Rust, "fn main() {\n    println!(\"hello world\");\n}\n"},
	}

	b := NewBuilder(&TreeSitter{Strict: true}, nil)
	tax := b.Taxonomy()

	for _, tc := range tests {
		t.Run(string(tc.lang), func(t *testing.T) {
			doc, err := b.FromSource(context.Background(), tc.lang, []byte(tc.source))
			require.NoError(t, err)

			require.Equal(t, "unit", doc.Tree.Type())
			require.True(t, containsType(doc.Tree, "function_definition"),
				"no function_definition in %s", doc.Encoding())

			var walk func(*Node)
			walk = func(n *Node) {
				require.False(t, tax.IsNoise(n.Type()), "noise node %q survived", n.Type())
				require.NotEmpty(t, n.Type())
				for _, c := range n.Children {
					walk(c)
				}
			}
			walk(doc.Tree)

			again, err := b.FromSource(context.Background(), tc.lang, []byte(tc.source))
			require.NoError(t, err)
			require.Equal(t, doc.Encoding(), again.Encoding())
			require.Equal(t, doc.Checksum, again.Checksum)
		})
	}
}

func TestTreeSitterStrict(t *testing.T) {
	src := []byte("package main\n\nfunc main( {\n")

	_, err := (&TreeSitter{Strict: true}).Parse(context.Background(), Go, src)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, Go, parseErr.Language)

	root, err := (&TreeSitter{}).Parse(context.Background(), Go, src)
	require.NoError(t, err)
	require.NotNil(t, root)
}

func TestTreeSitterUnsupported(t *testing.T) {
	_, err := (&TreeSitter{}).Parse(context.Background(), Language("cobol"), []byte("x"))
	var langErr *UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
}

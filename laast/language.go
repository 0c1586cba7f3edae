package laast

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
)

// Language identifies a supported source language.
type Language string

const (
	CSharp     Language = "c_sharp"
	Go         Language = "go"
	Java       Language = "java"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Ruby       Language = "ruby"
	Rust       Language = "rust"
)

// grammars holds the tree-sitter grammar for each supported language.
var grammars = map[Language]func() *sitter.Language{
	CSharp:     csharp.GetLanguage,
	Go:         golang.GetLanguage,
	Java:       java.GetLanguage,
	JavaScript: javascript.GetLanguage,
	Python:     python.GetLanguage,
	Ruby:       ruby.GetLanguage,
	Rust:       rust.GetLanguage,
}

// extensions maps a file extension (without the dot) to its language.
var extensions = map[string]Language{
	"cs":   CSharp,
	"go":   Go,
	"java": Java,
	"js":   JavaScript,
	"py":   Python,
	"rb":   Ruby,
	"rs":   Rust,
}

var aliases = map[string]Language{
	"c#":     CSharp,
	"csharp": CSharp,
	"js":     JavaScript,
}

// Languages returns all supported languages in lexical order.
func Languages() []Language {
	langs := make([]Language, 0, len(grammars))
	for lang := range grammars {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := grammars[l]
	return ok
}

// Extensions returns the file extensions for l (e.g., [".go"]).
func (l Language) Extensions() []string {
	var exts []string
	for ext, lang := range extensions {
		if lang == l {
			exts = append(exts, "."+ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// TreeSitterLang returns the tree-sitter grammar for l, or nil.
func (l Language) TreeSitterLang() *sitter.Language {
	grammar, ok := grammars[l]
	if !ok {
		return nil
	}
	return grammar()
}

// ParseLanguage resolves a language tag.
func ParseLanguage(name string) (Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if lang := Language(name); lang.Valid() {
		return lang, nil
	}
	if lang, ok := aliases[name]; ok {
		return lang, nil
	}
	return "", &UnsupportedLanguageError{Language: name}
}

// LanguageForPath infers the language of a file from its extension.
func LanguageForPath(path string) (Language, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", &UnsupportedLanguageError{Path: path}
	}
	lang, ok := extensions[ext]
	if !ok {
		return "", &UnsupportedLanguageError{Extension: ext}
	}
	return lang, nil
}

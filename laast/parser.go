package laast

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parser turns source bytes into a concrete syntax tree.
type Parser interface {
	Parse(ctx context.Context, language Language, source []byte) (*SyntaxNode, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(ctx context.Context, language Language, source []byte) (*SyntaxNode, error)

// Parse calls f.
func (f ParserFunc) Parse(ctx context.Context, language Language, source []byte) (*SyntaxNode, error) {
	return f(ctx, language, source)
}

// TreeSitter parses source code with the tree-sitter grammars.
// It is safe for concurrent use; every call gets its own native parser.
type TreeSitter struct {
	// Strict rejects trees containing error nodes instead of returning the
	// partial tree tree-sitter recovered.
	Strict bool
}

// Parse parses source and copies the resulting tree into SyntaxNodes.
func (ts *TreeSitter) Parse(ctx context.Context, language Language, source []byte) (*SyntaxNode, error) {
	grammar := language.TreeSitterLang()
	if grammar == nil {
		return nil, &UnsupportedLanguageError{Language: string(language)}
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(grammar)

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{Language: language, Err: err}
	}
	if tree == nil {
		return nil, &ParseError{Language: language, Err: errors.New("no tree produced")}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Language: language, Err: errors.New("no root node")}
	}
	if ts.Strict && root.HasError() {
		err := errors.New("syntax error")
		if bad := firstError(root); bad != nil {
			start := bad.StartPoint()
			err = fmt.Errorf("syntax error at %d:%d", start.Row+1, start.Column+1)
		}
		return nil, &ParseError{Language: language, Err: err}
	}

	return convertNode(root), nil
}

func convertNode(n *sitter.Node) *SyntaxNode {
	node := &SyntaxNode{
		Kind:      n.Type(),
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
	}

	count := int(n.ChildCount())
	if count > 0 {
		node.Children = make([]*SyntaxNode, 0, count)
	}
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil {
			node.Children = append(node.Children, convertNode(child))
		}
	}
	return node
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

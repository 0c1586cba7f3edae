// Package laast builds language-agnostic syntax trees (LAASTs) from source
// files and measures structural similarity between them.
package laast

import "strings"

// PropType is the property key holding a node's canonical type.
const PropType = "type"

// SyntaxNode is a node of a grammar-specific concrete syntax tree as handed
// over by a Parser. The canonicalizer only reads it.
type SyntaxNode struct {
	Kind      string        `json:"kind"`
	StartByte uint32        `json:"start_byte"`
	EndByte   uint32        `json:"end_byte"`
	Children  []*SyntaxNode `json:"children,omitempty"`
}

// Node is a node of a language-agnostic syntax tree. Children are kept in
// source order.
type Node struct {
	Properties map[string]string `json:"properties"`
	Children   []*Node           `json:"children,omitempty"`
}

// Type returns the canonical type of n.
func (n *Node) Type() string {
	return n.Properties[PropType]
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}

// Canonicalize projects a syntax tree onto a LAAST. The boolean result is
// false when the root itself is noise; in that case no node is produced.
// A discarded node takes its whole subtree with it.
func (t *Taxonomy) Canonicalize(sn *SyntaxNode) (*Node, bool) {
	if sn == nil {
		return nil, false
	}

	// Some grammars emit a bare space as a kind; whitespace never matters.
	kind := strings.TrimSpace(sn.Kind)
	if kind == "" || t.IsNoise(kind) {
		return nil, false
	}

	node := &Node{
		Properties: map[string]string{PropType: t.CanonicalKind(kind)},
	}
	for _, child := range sn.Children {
		if c, ok := t.Canonicalize(child); ok {
			node.Children = append(node.Children, c)
		}
	}

	return node, true
}

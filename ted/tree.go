// Package ted computes tree edit distances between trees written in bracket
// notation, e.g. {a{b}{c{d}}}.
package ted

import (
	"fmt"
	"strings"
)

// Tree is an ordered labelled tree.
type Tree struct {
	Label    string
	Children []*Tree
}

// Size returns the number of nodes in t.
func (t *Tree) Size() int {
	n := 1
	for _, c := range t.Children {
		n += c.Size()
	}
	return n
}

// String returns the bracket notation of t.
func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder) {
	sb.WriteByte('{')
	for i := 0; i < len(t.Label); i++ {
		if c := t.Label[i]; c == '{' || c == '}' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(t.Label[i])
	}
	for _, c := range t.Children {
		c.write(sb)
	}
	sb.WriteByte('}')
}

// Parse decodes a tree in bracket notation. A backslash escapes the byte
// that follows it inside a label.
func Parse(s string) (*Tree, error) {
	p := &bracketParser{src: s}
	p.skipSpace()
	t, err := p.tree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing input at offset %d", p.pos)
	}
	return t, nil
}

type bracketParser struct {
	src string
	pos int
}

func (p *bracketParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *bracketParser) tree() (*Tree, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return nil, fmt.Errorf("expected '{' at offset %d", p.pos)
	}
	p.pos++

	var label strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '{' || c == '}' {
			break
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("dangling escape at end of input")
			}
			c = p.src[p.pos]
		}
		label.WriteByte(c)
		p.pos++
	}

	t := &Tree{Label: label.String()}
	for p.pos < len(p.src) && p.src[p.pos] == '{' {
		child, err := p.tree()
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, child)
	}

	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unterminated node %q", t.Label)
	}
	// Only '}' can be left here.
	p.pos++
	return t, nil
}

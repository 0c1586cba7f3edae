package laast

import (
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
)

// Encode serializes n into bracket notation: every node is written as
// {label{child}...}. The label is the node type followed by ",key=value" for
// every other property in key order. Structural characters inside labels are
// backslash-escaped.
func Encode(n *Node) string {
	var sb strings.Builder
	encodeNode(&sb, n)
	return sb.String()
}

// Fingerprint returns a 64-bit hash of the encoding of n.
func Fingerprint(n *Node) uint64 {
	return xxh3.HashString(Encode(n))
}

func encodeNode(sb *strings.Builder, n *Node) {
	sb.WriteByte('{')
	writeEscaped(sb, n.Type())

	if len(n.Properties) > 1 {
		keys := make([]string, 0, len(n.Properties)-1)
		for k := range n.Properties {
			if k != PropType {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(',')
			writeEscaped(sb, k)
			sb.WriteByte('=')
			writeEscaped(sb, n.Properties[k])
		}
	}

	for _, child := range n.Children {
		encodeNode(sb, child)
	}
	sb.WriteByte('}')
}

func writeEscaped(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '{', '}', ',', '=':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
}

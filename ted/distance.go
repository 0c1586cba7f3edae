package ted

import (
	"context"
	"fmt"
)

// Distance returns the unit-cost tree edit distance between a and b:
// the minimum number of node insertions, deletions and relabelings that turn
// a into b. It implements the Zhang-Shasha algorithm.
func Distance(a, b *Tree) int {
	pa, pb := postorder(a), postorder(b)
	na, nb := len(pa.labels), len(pb.labels)

	td := make([][]int, na)
	for i := range td {
		td[i] = make([]int, nb)
	}

	rootsB := pb.keyroots()
	for _, i := range pa.keyroots() {
		for _, j := range rootsB {
			forestDistance(pa, pb, i, j, td)
		}
	}

	return td[na-1][nb-1]
}

func forestDistance(a, b *indexed, i, j int, td [][]int) {
	li, lj := a.leftmost[i], b.leftmost[j]
	m, n := i-li+2, j-lj+2

	fd := make([][]int, m)
	for x := range fd {
		fd[x] = make([]int, n)
	}
	for di := 1; di < m; di++ {
		fd[di][0] = fd[di-1][0] + 1
	}
	for dj := 1; dj < n; dj++ {
		fd[0][dj] = fd[0][dj-1] + 1
	}

	for di := 1; di < m; di++ {
		x := li + di - 1
		for dj := 1; dj < n; dj++ {
			y := lj + dj - 1
			del := fd[di-1][dj] + 1
			ins := fd[di][dj-1] + 1

			if a.leftmost[x] == li && b.leftmost[y] == lj {
				relabel := fd[di-1][dj-1]
				if a.labels[x] != b.labels[y] {
					relabel++
				}
				fd[di][dj] = min(del, ins, relabel)
				td[x][y] = fd[di][dj]
				continue
			}

			p, q := a.leftmost[x]-li, b.leftmost[y]-lj
			fd[di][dj] = min(del, ins, fd[p][q]+td[x][y])
		}
	}
}

// indexed is a tree flattened in postorder.
type indexed struct {
	labels   []string
	leftmost []int
}

func postorder(t *Tree) *indexed {
	idx := &indexed{}
	var walk func(*Tree) int
	walk = func(n *Tree) int {
		first := -1
		for _, c := range n.Children {
			l := walk(c)
			if first < 0 {
				first = l
			}
		}
		pos := len(idx.labels)
		if first < 0 {
			first = pos
		}
		idx.labels = append(idx.labels, n.Label)
		idx.leftmost = append(idx.leftmost, first)
		return first
	}
	walk(t)
	return idx
}

// keyroots returns, in increasing order, the nodes that have no later node
// sharing their leftmost leaf.
func (t *indexed) keyroots() []int {
	last := make(map[int]int, len(t.leftmost))
	for i, l := range t.leftmost {
		last[l] = i
	}
	var roots []int
	for i, l := range t.leftmost {
		if last[l] == i {
			roots = append(roots, i)
		}
	}
	return roots
}

// Oracle computes distances in-process.
type Oracle struct{}

// Distance parses both trees and returns their edit distance.
func (Oracle) Distance(ctx context.Context, a, b string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ta, err := Parse(a)
	if err != nil {
		return 0, fmt.Errorf("parse first tree: %w", err)
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, fmt.Errorf("parse second tree: %w", err)
	}
	return Distance(ta, tb), nil
}

package laast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/arjunmahishi/laast/ted"
)

// ErrNoDistances is returned by Summarize for an empty input.
var ErrNoDistances = errors.New("no distances to summarize")

// Stats summarizes a set of pairwise distances.
type Stats struct {
	Min int `json:"min"`
	Max int `json:"max"`
	// Avg is the sum of distances floor-divided by Count.
	Avg int `json:"avg"`
	// Mean is the exact average.
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Similarity holds the similarity measures of a batch of documents.
type Similarity struct {
	EditDistance Stats `json:"edit_distance"`
}

func (s Similarity) String() string {
	var sb strings.Builder
	sb.WriteString("Edit Distance\n")
	sb.WriteString("-------------\n")
	fmt.Fprintf(&sb, "Min: %d\n", s.EditDistance.Min)
	fmt.Fprintf(&sb, "Max: %d\n", s.EditDistance.Max)
	fmt.Fprintf(&sb, "Average: %d\n", s.EditDistance.Avg)
	return sb.String()
}

// PairDistance is the distance between documents I and J, with I < J.
type PairDistance struct {
	I        int `json:"i"`
	J        int `json:"j"`
	Distance int `json:"distance"`
}

// Report is the result of comparing a batch of documents.
type Report struct {
	Documents []string       `json:"documents"`
	Pairs     []PairDistance `json:"pairs"`
	Similarity
}

// Summarize reduces distances to their min, max and averages.
func Summarize(distances []int) (Stats, error) {
	if len(distances) == 0 {
		return Stats{}, ErrNoDistances
	}

	stats := Stats{
		Min:   distances[0],
		Max:   distances[0],
		Count: len(distances),
	}
	sum := 0
	for _, d := range distances {
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
		sum += d
	}
	stats.Avg = sum / len(distances)
	stats.Mean = float64(sum) / float64(len(distances))
	return stats, nil
}

// Compare computes the edit distance of every unordered pair of documents
// and summarizes the results. The first failing pair aborts the batch.
func Compare(ctx context.Context, docs []*Document, opts CompareOptions) (*Report, error) {
	if len(docs) < 2 {
		return nil, &EmptyBatchError{Count: len(docs)}
	}
	if opts.Oracle == nil {
		opts.Oracle = &ted.Oracle{}
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	encodings := make([]string, len(docs))
	fingerprints := make([]uint64, len(docs))
	labels := make([]string, len(docs))
	for i, doc := range docs {
		encodings[i] = doc.Encoding()
		fingerprints[i] = Fingerprint(doc.Tree)
		labels[i] = doc.Label()
	}

	pairs := make([]PairDistance, 0, len(docs)*(len(docs)-1)/2)
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			pairs = append(pairs, PairDistance{I: i, J: j})
		}
	}

	cache := newDistanceCache(opts.Oracle)
	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for k := range pairs {
		p := &pairs[k]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := cache.distance(gctx,
				fingerprints[p.I], encodings[p.I],
				fingerprints[p.J], encodings[p.J],
			)
			if err != nil {
				return &PairError{I: p.I, J: p.J, Err: err}
			}
			p.Distance = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	distances := make([]int, len(pairs))
	for k, p := range pairs {
		distances[k] = p.Distance
	}
	stats, err := Summarize(distances)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("compare.done",
		"documents", len(docs),
		"pairs", len(pairs),
		"oracle_calls", cache.calls(),
	)

	return &Report{
		Documents:  labels,
		Pairs:      pairs,
		Similarity: Similarity{EditDistance: stats},
	}, nil
}

// distanceCache memoizes oracle answers per pair of tree fingerprints so
// that repeated tree pairs reach the oracle once.
type distanceCache struct {
	oracle DistanceOracle
	group  singleflight.Group

	mu      sync.Mutex
	results map[[2]uint64]int
	n       int
}

func newDistanceCache(oracle DistanceOracle) *distanceCache {
	return &distanceCache{
		oracle:  oracle,
		results: make(map[[2]uint64]int),
	}
}

func (c *distanceCache) distance(ctx context.Context, fa uint64, a string, fb uint64, b string) (int, error) {
	// Edit distance is symmetric.
	key := [2]uint64{fa, fb}
	if fb < fa {
		key = [2]uint64{fb, fa}
	}

	c.mu.Lock()
	d, ok := c.results[key]
	c.mu.Unlock()
	if ok {
		return d, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%016x:%016x", key[0], key[1]), func() (any, error) {
		c.mu.Lock()
		c.n++
		c.mu.Unlock()

		d, err := c.oracle.Distance(ctx, a, b)
		if err != nil {
			return 0, err
		}
		if d < 0 {
			return 0, &OracleError{Op: "distance", Err: fmt.Errorf("negative distance %d", d)}
		}

		c.mu.Lock()
		c.results[key] = d
		c.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (c *distanceCache) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

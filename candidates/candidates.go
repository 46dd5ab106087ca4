// Package candidates narrows an all-pairs sequence comparison down to pairs
// likely to align well, so a driver can skip calling align.Local on pairs
// that share no meaningful k-mer anchor chain. A k-mer anchor-chaining
// pipeline, originally built to assemble final alignment segments, is
// repurposed here into a same-orientation overlap filter: callers still run
// the real local alignment themselves on whatever pairs Find returns.
package candidates

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Named is a sequence tagged with the identity a Pair's I/J indices refer to.
type Named struct {
	ID  string
	Seq string
}

// Pair is a candidate (seqs[I], seqs[J]) worth aligning, with Weight the
// total length of non-overlapping k-mer anchors found between them.
type Pair struct {
	I, J   int
	Weight int
}

// Options tunes the anchor search. Zero values fall back to the defaults
// below.
type Options struct {
	// K is the k-mer length used for exact-match anchoring.
	K int
	// MinChainLength is the minimum total anchor weight for a pair to be
	// reported.
	MinChainLength int
	// MaxConcurrency bounds how many pairs are scored at once. 0 means
	// runtime.GOMAXPROCS(0).
	MaxConcurrency int
}

const (
	DefaultK              = 11
	DefaultMinChainLength = 22
)

func (o Options) withDefaults() Options {
	if o.K <= 0 {
		o.K = DefaultK
	}
	if o.MinChainLength <= 0 {
		o.MinChainLength = DefaultMinChainLength
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

// Find scores every unordered pair of seqs and returns the ones whose anchor
// chain weight clears opts.MinChainLength, sorted by weight descending. Pair
// scoring runs across a worker pool sized to opts.MaxConcurrency; the first
// error (including ctx cancellation) aborts the remaining work.
func Find(ctx context.Context, seqs []Named, opts Options) ([]Pair, error) {
	opts = opts.withDefaults()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrency)

	var (
		mu      sync.Mutex
		results []Pair
	)

	for i := 0; i < len(seqs); i++ {
		for j := i + 1; j < len(seqs); j++ {
			i, j := i, j
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				weight := chainWeight(seqs[i].Seq, seqs[j].Seq, opts.K)
				if weight < opts.MinChainLength {
					return nil
				}

				mu.Lock()
				results = append(results, Pair{I: i, J: j, Weight: weight})
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].Weight > results[b].Weight })
	return results, nil
}

type anchor struct {
	aPos, bPos int
}

// chainWeight finds every exact k-mer match between a and b, then greedily
// selects a non-overlapping chain of them (scanning left to right on a) and
// returns the total length covered. Unlike the anchor chaining it is adapted
// from, it does not extend matches through mismatches: align.Local already
// scores mismatches properly once a pair is selected, so this filter only
// needs a coarse, cheap signal of shared content.
func chainWeight(a, b string, k int) int {
	if k <= 0 || k > len(a) || k > len(b) {
		return 0
	}

	index := make(map[string][]int, len(b)-k+1)
	for i := 0; i+k <= len(b); i++ {
		kmer := b[i : i+k]
		index[kmer] = append(index[kmer], i)
	}

	var matches []anchor
	for i := 0; i+k <= len(a); i++ {
		kmer := a[i : i+k]
		for _, bPos := range index[kmer] {
			matches = append(matches, anchor{aPos: i, bPos: bPos})
		}
	}
	if len(matches) == 0 {
		return 0
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].aPos < matches[j].aPos })

	weight := 0
	lastAEnd, lastBEnd := -1, -1
	for _, m := range matches {
		if m.aPos <= lastAEnd || m.bPos <= lastBEnd {
			continue
		}
		weight += k
		lastAEnd = m.aPos + k - 1
		lastBEnd = m.bPos + k - 1
	}
	return weight
}

// Package tree implements the online maximum-weight spanning tree builder:
// an incremental algorithm that ingests weighted edges in arbitrary order and
// keeps, between any two connected nodes, only the heaviest edge that survives
// every cycle it would otherwise close.
package tree

import "sort"

const (
	// unset is the sentinel for a node's score, rawScore, location and
	// length slots before it has ever been attached to the tree.
	unset = -1
)

// Builder owns the parallel arrays describing the current forest. Node 0 is
// a reserved sentinel: the default parent of every unattached node, and also
// the synthetic super-root joining every top-level component.
type Builder struct {
	capacity int

	parent   []int
	score    []int
	rawScore []int
	location []int
	length   []int

	maxSeenID int

	linksProcessed int
	linksAdded     int
	linksRejected  int

	searchID    uint64
	visitStampA []uint64
	visitStampB []uint64
	visitPosA   []int
	visitPosB   []int

	pathA []int
	pathB []int
}

// New creates a Builder with capacity n, allocating all bookkeeping arrays
// once up front.
func New(n int) *Builder {
	b := &Builder{
		capacity:    n,
		parent:      make([]int, n),
		score:       make([]int, n),
		rawScore:    make([]int, n),
		location:    make([]int, n),
		length:      make([]int, n),
		visitStampA: make([]uint64, n),
		visitStampB: make([]uint64, n),
		visitPosA:   make([]int, n),
		visitPosB:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		b.score[i] = unset
		b.rawScore[i] = unset
		b.location[i] = unset
		b.length[i] = unset
	}
	return b
}

// Capacity returns the number of nodes this builder was constructed for.
func (b *Builder) Capacity() int { return b.capacity }

// MaxSeenID returns the largest node id ever referenced by AddLink.
func (b *Builder) MaxSeenID() int { return b.maxSeenID }

// LinksProcessed, LinksAdded and LinksRejected report the running counters.
func (b *Builder) LinksProcessed() int { return b.linksProcessed }
func (b *Builder) LinksAdded() int     { return b.linksAdded }
func (b *Builder) LinksRejected() int  { return b.linksRejected }

// Parent, Score, RawScore, Location and Length expose the per-node arrays.
func (b *Builder) Parent(v int) int   { return b.parent[v] }
func (b *Builder) Score(v int) int    { return b.score[v] }
func (b *Builder) RawScore(v int) int { return b.rawScore[v] }
func (b *Builder) Location(v int) int { return b.location[v] }
func (b *Builder) Length(v int) int   { return b.length[v] }

// Attached reports whether v carries a real incoming edge.
func (b *Builder) Attached(v int) bool { return v != 0 && b.score[v] >= 0 }

// AddLink offers a candidate edge (a, b) with the given score, raw score,
// location and length. It returns true if the edge was accepted (as a new
// edge, or by displacing a weaker one on the cycle it would have closed).
func (b *Builder) AddLink(a, bb, score, rawScore, location, length int) bool {
	b.linksProcessed++

	if a > b.maxSeenID {
		b.maxSeenID = a
	}
	if bb > b.maxSeenID {
		b.maxSeenID = bb
	}

	if a == bb {
		return false
	}
	if a < 0 || a >= b.capacity || bb < 0 || bb >= b.capacity {
		return false
	}

	b.searchID++
	sid := b.searchID

	b.pathA = b.pathA[:0]
	b.pathB = b.pathB[:0]

	curA, curB := a, bb
	activeA, activeB := true, true

	// Both sides reaching 0 without an explicit cross-stamp match is not a
	// distinct case: whichever side arrives at 0 second always finds the
	// first side's stamp already there, so the loop below always detects
	// a meeting point without a separate fallback.
	for activeA || activeB {
		if activeA {
			if b.visitStampB[curA] == sid {
				b.pathB = b.pathB[:b.visitPosB[curA]]
				break
			}
			b.visitStampA[curA] = sid
			b.visitPosA[curA] = len(b.pathA)
			if curA == 0 {
				activeA = false
			} else {
				b.pathA = append(b.pathA, curA)
				curA = b.parent[curA]
			}
		}
		if activeB {
			if b.visitStampA[curB] == sid {
				b.pathA = b.pathA[:b.visitPosA[curB]]
				break
			}
			b.visitStampB[curB] = sid
			b.visitPosB[curB] = len(b.pathB)
			if curB == 0 {
				activeB = false
			} else {
				b.pathB = append(b.pathB, curB)
				curB = b.parent[curB]
			}
		}
	}

	// Find the weakest link across both paths, comparing against the new
	// edge's own score: the new edge itself is the baseline to beat.
	minScore := score
	weakestSide := byte('n') // 'a', 'b', or 'n' for "the new edge itself"
	weakestPos := -1

	for i, v := range b.pathA {
		if b.score[v] < minScore {
			minScore = b.score[v]
			weakestSide = 'a'
			weakestPos = i
		}
	}
	for i, v := range b.pathB {
		if b.score[v] < minScore {
			minScore = b.score[v]
			weakestSide = 'b'
			weakestPos = i
		}
	}

	if weakestSide == 'n' {
		b.linksRejected++
		return false
	}

	// The chosen side's origin (path[0], always a or bb respectively) is
	// reattached directly to the opposite endpoint; the reversal loop only
	// re-threads the portion of the path strictly between the origin and
	// the displaced weakest link.
	if weakestSide == 'a' {
		b.reversePath(b.pathA, weakestPos)
		b.attachNewEdge(bb, a, score, rawScore, location, length)
	} else {
		b.reversePath(b.pathB, weakestPos)
		b.attachNewEdge(a, bb, score, rawScore, location, length)
	}

	b.linksAdded++
	return true
}

// reversePath reverses path[0..=p]: each node on the reversed prefix inherits
// the edge properties of the node that was its predecessor, and path[0] is
// detached into a self-root ready to accept the new edge.
func (b *Builder) reversePath(path []int, p int) {
	for i := p; i >= 1; i-- {
		prev := path[i-1]
		cur := path[i]
		b.parent[cur] = prev
		b.score[cur] = b.score[prev]
		b.rawScore[cur] = b.rawScore[prev]
		b.location[cur] = b.location[prev]
		b.length[cur] = b.length[prev]
	}
	root := path[0]
	b.parent[root] = root
	b.score[root] = unset
	b.rawScore[root] = unset
	b.location[root] = unset
	b.length[root] = unset
}

// attachNewEdge sets child's edge attributes to point at parent.
func (b *Builder) attachNewEdge(parent, child, score, rawScore, location, length int) {
	b.parent[child] = parent
	b.score[child] = score
	b.rawScore[child] = rawScore
	b.location[child] = location
	b.length[child] = length
}

// TwilightThreshold is the default upper bound (exclusive) for low-confidence
// edges in Twilight's classification; see config.Config.Tree.TwilightThreshold for
// the configurable override.
const TwilightThreshold = 300

// Twilight returns the attached nodes with score in [0, threshold), sorted by
// score descending.
func (b *Builder) Twilight(threshold int) []int {
	out := make([]int, 0)
	for v := 1; v <= b.maxSeenID && v < b.capacity; v++ {
		if b.Attached(v) && b.score[v] >= 0 && b.score[v] < threshold {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return b.score[out[i]] > b.score[out[j]]
	})
	return out
}

// Children builds, for every attached node, the list of its children sorted
// by score descending. The outer slice has length min(maxSeenID+1, capacity).
func (b *Builder) Children() [][]int {
	n := b.maxSeenID + 1
	if n > b.capacity {
		n = b.capacity
	}
	if n < 0 {
		n = 0
	}
	children := make([][]int, n)
	for p := range children {
		children[p] = make([]int, 0)
	}
	for v := 1; v <= b.maxSeenID && v < b.capacity; v++ {
		if !b.Attached(v) {
			continue
		}
		p := b.parent[v]
		if p < 0 || p >= n {
			continue
		}
		children[p] = append(children[p], v)
	}
	for _, list := range children {
		sort.SliceStable(list, func(i, j int) bool {
			return b.score[list[i]] > b.score[list[j]]
		})
	}
	return children
}

// Root selects the preferred root among candidates {v : v <= maxSeenID and
// (score[v] < 0 or parent[v] == v)}. Ties among multiple candidates are
// broken by the most transitive descendants; the first candidate wins ties.
func (b *Builder) Root() int {
	var candidates []int
	for v := 0; v <= b.maxSeenID && v < b.capacity; v++ {
		if b.score[v] < 0 || b.parent[v] == v {
			candidates = append(candidates, v)
		}
	}
	switch len(candidates) {
	case 0:
		return 0
	case 1:
		return candidates[0]
	}

	children := b.Children()
	best := candidates[0]
	bestCount := countDescendants(children, best)
	for _, c := range candidates[1:] {
		n := countDescendants(children, c)
		if n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}

func countDescendants(children [][]int, root int) int {
	if root < 0 || root >= len(children) {
		return 0
	}
	total := 0
	for _, c := range children[root] {
		total += 1 + countDescendants(children, c)
	}
	return total
}

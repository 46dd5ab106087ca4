// Package snapshot renders a tree.Builder's state to the output formats the
// reference implementation produces: a JSON dump of every parallel array,
// an ASCII tree listing, and a Graphviz DOT rendering.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hmmm42/treealign/tree"
)

// Document is the JSON snapshot of a Builder's state. Field order matches
// encoding/json's struct-field emission order, which mirrors the reference
// write_json's key order exactly.
type Document struct {
	LinksProcessed int     `json:"links_processed"`
	LinksAdded     int     `json:"links_added"`
	LinksRejected  int     `json:"links_rejected"`
	MaxSeenID      int     `json:"max_seen_id"`
	Parents        []int   `json:"parents"`
	Scores         []int   `json:"scores"`
	RawScores      []int   `json:"raw_scores"`
	Locations      []int   `json:"locations"`
	Lengths        []int   `json:"lengths"`
	TwilightNodes  []int   `json:"twilight_nodes"`
	Root           int     `json:"root"`
	Children       [][]int `json:"children"`
}

// Build assembles a Document from b, using threshold for twilight
// classification.
func Build(b *tree.Builder, threshold int) Document {
	doc := Document{
		LinksProcessed: b.LinksProcessed(),
		LinksAdded:     b.LinksAdded(),
		LinksRejected:  b.LinksRejected(),
		MaxSeenID:      b.MaxSeenID(),
		Parents:        make([]int, b.Capacity()),
		Scores:         make([]int, b.Capacity()),
		RawScores:      make([]int, b.Capacity()),
		Locations:      make([]int, b.Capacity()),
		Lengths:        make([]int, b.Capacity()),
		TwilightNodes:  b.Twilight(threshold),
		Root:           b.Root(),
		Children:       b.Children(),
	}
	for v := 0; v < b.Capacity(); v++ {
		doc.Parents[v] = b.Parent(v)
		doc.Scores[v] = b.Score(v)
		doc.RawScores[v] = b.RawScore(v)
		doc.Locations[v] = b.Location(v)
		doc.Lengths[v] = b.Length(v)
	}
	return doc
}

// Write serializes b's state as indented JSON to w.
func Write(w io.Writer, b *tree.Builder, threshold int) error {
	doc := Build(b, threshold)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("snapshot: encoding json: %w", err)
	}
	return nil
}

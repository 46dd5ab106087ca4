package snapshot_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmmm42/treealign/snapshot"
	"github.com/hmmm42/treealign/tree"
)

func buildSample() *tree.Builder {
	b := tree.New(5)
	b.AddLink(1, 2, 50, 50, 0, 10)
	b.AddLink(2, 3, 200, 200, 0, 10)
	b.AddLink(4, 3, 400, 400, 0, 10)
	return b
}

func TestBuild_PopulatesFullCapacityArraysAndDerivedFields(t *testing.T) {
	b := buildSample()
	doc := snapshot.Build(b, 300)

	assert.Equal(t, 3, doc.LinksProcessed)
	assert.Equal(t, 3, doc.LinksAdded)
	assert.Equal(t, 0, doc.LinksRejected)
	assert.Equal(t, 4, doc.MaxSeenID)

	require.Len(t, doc.Parents, 5)
	require.Len(t, doc.Scores, 5)
	require.Len(t, doc.RawScores, 5)
	require.Len(t, doc.Locations, 5)
	require.Len(t, doc.Lengths, 5)

	assert.Equal(t, 2, doc.Parents[1])
	assert.Equal(t, 3, doc.Root)
	assert.Equal(t, []int{2, 1}, doc.TwilightNodes)
}

func TestWrite_EmitsKeysInReferenceOrder(t *testing.T) {
	b := buildSample()
	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, b, 300))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	wantKeys := []string{
		"links_processed", "links_added", "links_rejected", "max_seen_id",
		"parents", "scores", "raw_scores", "locations", "lengths",
		"twilight_nodes", "root", "children",
	}
	for _, k := range wantKeys {
		_, ok := raw[k]
		assert.Truef(t, ok, "missing key %q", k)
	}

	text := buf.String()
	lastIdx := -1
	for _, k := range wantKeys {
		idx := strings.Index(text, `"`+k+`"`)
		require.NotEqual(t, -1, idx, "key %q not found", k)
		assert.Greater(t, idx, lastIdx, "key %q out of order", k)
		lastIdx = idx
	}
}

func TestWriteASCII_ListsRootAndChildrenByScoreDescending(t *testing.T) {
	b := buildSample()
	var buf bytes.Buffer
	require.NoError(t, snapshot.WriteASCII(&buf, b, 0))

	out := buf.String()
	assert.Contains(t, out, "root: node 3")
	// node 2 (score 200) must be listed before node 1 is reached through it,
	// and node 4 (score 400) is 3's other, heavier child.
	idx2 := strings.Index(out, "Node 2")
	idx4 := strings.Index(out, "Node 4")
	require.NotEqual(t, -1, idx2)
	require.NotEqual(t, -1, idx4)
	assert.Less(t, idx4, idx2)
}

func TestWriteASCII_StubsBelowThreshold(t *testing.T) {
	b := buildSample()
	var buf bytes.Buffer
	require.NoError(t, snapshot.WriteASCII(&buf, b, 300))
	assert.Contains(t, buf.String(), "STUB")
}

func TestToDOT_ContainsNodesAndWeightedEdges(t *testing.T) {
	b := buildSample()
	dot := snapshot.ToDOT(b, 300)
	assert.Contains(t, dot, "digraph G")
	assert.Contains(t, dot, `"n1" -> "n2"`)
	assert.Contains(t, dot, `label="50"`)
}

func TestWriteDOT_RendersWithoutError(t *testing.T) {
	b := buildSample()
	var buf bytes.Buffer
	err := snapshot.WriteDOT(context.Background(), &buf, b, 300)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.Bytes())
}

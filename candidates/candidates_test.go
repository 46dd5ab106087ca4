package candidates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmmm42/treealign/candidates"
)

func TestFind_ReportsPairsClearingMinChainLength(t *testing.T) {
	seqs := []candidates.Named{
		{ID: "s0", Seq: "ACGTACGTACGTACGTACGTACGT"},
		{ID: "s1", Seq: "ACGTACGTACGTACGTACGTACGT"},
		{ID: "s2", Seq: "TTTTTTTTTTTTTTTTTTTTTTTT"},
	}

	pairs, err := candidates.Find(context.Background(), seqs, candidates.Options{K: 8, MinChainLength: 8})
	require.NoError(t, err)
	require.NotEmpty(t, pairs)

	found := false
	for _, p := range pairs {
		if (p.I == 0 && p.J == 1) || (p.I == 1 && p.J == 0) {
			found = true
		}
		assert.NotEqual(t, 2, p.I)
		assert.NotEqual(t, 2, p.J)
	}
	assert.True(t, found, "expected the two identical sequences to be reported as a candidate pair")
}

func TestFind_SortsByWeightDescending(t *testing.T) {
	seqs := []candidates.Named{
		{ID: "s0", Seq: "AAAAAAAAAAAAAAAAAAAA"},
		{ID: "s1", Seq: "AAAAAAAAAAAAAAAAAAAA"},
		{ID: "s2", Seq: "AAAAAAAACCCCCCCCCCCC"},
	}

	pairs, err := candidates.Find(context.Background(), seqs, candidates.Options{K: 6, MinChainLength: 6})
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i-1].Weight, pairs[i].Weight)
	}
	assert.Equal(t, 0, pairs[0].I)
	assert.Equal(t, 1, pairs[0].J)
}

func TestFind_NoSharedContentReturnsEmpty(t *testing.T) {
	seqs := []candidates.Named{
		{ID: "s0", Seq: "AAAAAAAAAAAAAAAAAAAA"},
		{ID: "s1", Seq: "CCCCCCCCCCCCCCCCCCCC"},
	}

	pairs, err := candidates.Find(context.Background(), seqs, candidates.Options{K: 8, MinChainLength: 8})
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestFind_CancelledContextReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seqs := []candidates.Named{
		{ID: "s0", Seq: "ACGTACGTACGTACGTACGT"},
		{ID: "s1", Seq: "ACGTACGTACGTACGTACGT"},
	}

	_, err := candidates.Find(ctx, seqs, candidates.Options{})
	assert.Error(t, err)
}

func TestFind_EmptyInputProducesNoPairs(t *testing.T) {
	pairs, err := candidates.Find(context.Background(), nil, candidates.Options{})
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

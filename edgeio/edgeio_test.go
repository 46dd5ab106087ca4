package edgeio_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmmm42/treealign/edgeio"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_SkipsHeaderAndParsesRecords(t *testing.T) {
	path := writeCSV(t, "query,target,score,location,length\n1,2,50,0,10\n2,3,60,5,12\n")

	var got []edgeio.Edge
	err := edgeio.Load(context.Background(), path, 10, 0, func(e edgeio.Edge) bool {
		got = append(got, e)
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, edgeio.Edge{Query: 1, Target: 2, Score: 50, Location: 0, Length: 10}, got[0])
	assert.Equal(t, edgeio.Edge{Query: 2, Target: 3, Score: 60, Location: 5, Length: 12}, got[1])
}

func TestLoad_SkipsMalformedAndOutOfRangeRecords(t *testing.T) {
	path := writeCSV(t, "query,target,score,location,length\n"+
		"1,2,50,0,10\n"+ // kept
		"x,2,50,0,10\n"+ // malformed query
		"1,2,notanumber,0,10\n"+ // malformed score
		"1\n"+ // too few fields
		"1,20,50,0,10\n", // target out of range for numNodes=10
	)

	var got []edgeio.Edge
	err := edgeio.Load(context.Background(), path, 10, 0, func(e edgeio.Edge) bool {
		got = append(got, e)
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Query)
}

func TestLoad_EmptyFileIsNotAnError(t *testing.T) {
	path := writeCSV(t, "")
	var got []edgeio.Edge
	err := edgeio.Load(context.Background(), path, 10, 0, func(e edgeio.Edge) bool {
		got = append(got, e)
		return true
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_HeaderOnlyProducesNoEdges(t *testing.T) {
	path := writeCSV(t, "query,target,score,location,length\n")
	var got []edgeio.Edge
	err := edgeio.Load(context.Background(), path, 10, 0, func(e edgeio.Edge) bool {
		got = append(got, e)
		return true
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	err := edgeio.Load(context.Background(), "/nonexistent/edges.csv", 10, 0, func(edgeio.Edge) bool { return true })
	assert.Error(t, err)
}

func TestScanMaxID_ReturnsLargestEndpoint(t *testing.T) {
	path := writeCSV(t, "query,target,score,location,length\n1,2,50,0,10\n2,7,60,5,12\n3,2,10,0,5\n")
	maxID, err := edgeio.ScanMaxID(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, maxID)
}

func TestScanMaxID_EmptyFileReturnsZero(t *testing.T) {
	path := writeCSV(t, "")
	maxID, err := edgeio.ScanMaxID(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, maxID)
}

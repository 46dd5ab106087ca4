// Package edgeio streams weighted edges from the CSV format the reference
// tree builder consumes: a header row followed by query,target,score,
// location,length records.
package edgeio

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hmmm42/treealign/logging"
)

// Edge is one accepted record from the input stream.
type Edge struct {
	Query, Target, Score, Location, Length int
}

// Sink receives edges as they are parsed. Load skips a record silently (never
// calling Sink) when it is malformed or either endpoint is out of range.
type Sink func(Edge) bool

// Load reads path as a CSV edge stream and calls sink for each well-formed
// record whose query and target are both in [0, numNodes). The header line
// is always skipped. Progress is logged each time the query id changes to a
// multiple of interval; a non-positive interval disables progress logging.
func Load(ctx context.Context, path string, numNodes, interval int, sink Sink) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("edgeio: opening %s: %w", path, err)
	}
	defer f.Close()

	logger := logging.FromContext(ctx)
	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("edgeio: reading header of %s: %w", path, err)
	}

	oldQuery := -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		edge, ok := parseRecord(record)
		if !ok {
			continue
		}
		if edge.Query < 0 || edge.Target < 0 || edge.Query >= numNodes || edge.Target >= numNodes {
			continue
		}

		if interval > 0 && edge.Query != oldQuery {
			oldQuery = edge.Query
			if edge.Query%interval == 0 {
				logger.Infof("addlink: %d -> %d", edge.Query, edge.Target)
			}
		}

		sink(edge)
	}

	return nil
}

func parseRecord(record []string) (Edge, bool) {
	if len(record) < 5 {
		return Edge{}, false
	}
	var (
		edge Edge
		err  error
	)
	if edge.Query, err = strconv.Atoi(record[0]); err != nil {
		return Edge{}, false
	}
	if edge.Target, err = strconv.Atoi(record[1]); err != nil {
		return Edge{}, false
	}
	if edge.Score, err = strconv.Atoi(record[2]); err != nil {
		return Edge{}, false
	}
	if edge.Location, err = strconv.Atoi(record[3]); err != nil {
		return Edge{}, false
	}
	if edge.Length, err = strconv.Atoi(record[4]); err != nil {
		return Edge{}, false
	}
	return edge, true
}

// ScanMaxID pre-scans path for the largest node id appearing in either the
// query or target column, without allocating a TreeBuilder. It is the
// fallback used when the caller does not know the node count up front.
func ScanMaxID(ctx context.Context, path string, interval int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("edgeio: opening %s: %w", path, err)
	}
	defer f.Close()

	logger := logging.FromContext(ctx)
	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("edgeio: reading header of %s: %w", path, err)
	}

	maxID := 0
	oldID := 0
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		edge, ok := parseRecord(record)
		if !ok {
			continue
		}
		if edge.Query > maxID {
			maxID = edge.Query
		}
		if edge.Target > maxID {
			maxID = edge.Target
		}
		if edge.Query > oldID {
			oldID = edge.Query
			if interval > 0 && edge.Query%interval == 0 {
				logger.Infof("scanned: %d", edge.Query)
			}
		}
	}

	return maxID, nil
}

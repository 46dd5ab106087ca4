// Package align implements the Smith-Waterman local alignment kernel: a
// dynamic-programming fill over a 32x32 substitution matrix followed by a
// strict-precedence traceback.
package align

import (
	"errors"
	"fmt"

	"github.com/hmmm42/treealign/matrix"
)

// ErrAllocation is returned when the scoring matrix cannot be allocated,
// replacing the negative-sentinel-score convention of the reference C core
// with a structured error.
var ErrAllocation = errors.New("align: failed to allocate scoring matrix")

// maxCells bounds (m+1)*(n+1) so a pathological input fails fast with
// ErrAllocation instead of exhausting memory silently.
const maxCells = 1 << 34

// Column is one step of the traceback path. Exactly one of A, B is -1 on a
// gap column; both are >= 0 on a match/mismatch column.
type Column struct {
	A, B int
}

// Result is the outcome of a local alignment.
type Result struct {
	Score float64
	// Columns is tail-first: Columns[0] is the column at the best cell,
	// and the last column is the one where traceback stopped.
	Columns []Column
}

// Forward returns a copy of Columns in left-to-right reading order.
func (r Result) Forward() []Column {
	out := make([]Column, len(r.Columns))
	for i, c := range r.Columns {
		out[len(out)-1-i] = c
	}
	return out
}

// Local computes the best local alignment of a against b under substitution
// matrix sub and linear gap penalty gap (conventionally negative).
func Local(a, b []byte, sub matrix.Matrix32, gap float64) (Result, error) {
	m, n := len(a), len(b)
	stride := n + 1
	total := (m + 1) * stride
	if total < 0 || total > maxCells {
		return Result{}, fmt.Errorf("%w: %dx%d cells", ErrAllocation, m+1, n+1)
	}

	h := make([]float64, total)

	maxVal := 0.0
	maxI, maxJ := 0, 0

	for i := 1; i <= m; i++ {
		ca := a[i-1] & 31
		rowPrev := (i - 1) * stride
		row := i * stride
		for j := 1; j <= n; j++ {
			cb := b[j-1] & 31
			s := sub[ca][cb]

			diag := h[rowPrev+j-1] + s
			up := h[rowPrev+j] + gap
			left := h[row+j-1] + gap

			score := 0.0
			if diag > score {
				score = diag
			}
			if up > score {
				score = up
			}
			if left > score {
				score = left
			}
			h[row+j] = score

			if score > maxVal {
				maxVal = score
				maxI, maxJ = i, j
			}
		}
	}

	if maxVal <= 0 {
		return Result{Score: 0, Columns: nil}, nil
	}

	var columns []Column
	i, j := maxI, maxJ
	for i > 0 && j > 0 && h[i*stride+j] > 0 {
		current := h[i*stride+j]
		diag := h[(i-1)*stride+j-1]
		up := h[(i-1)*stride+j]
		s := sub[a[i-1]&31][b[j-1]&31]

		switch {
		case current == diag+s:
			columns = append(columns, Column{A: i - 1, B: j - 1})
			i--
			j--
		case current == up+gap:
			columns = append(columns, Column{A: i - 1, B: -1})
			i--
		default:
			columns = append(columns, Column{A: -1, B: j - 1})
			j--
		}
	}

	return Result{Score: maxVal, Columns: columns}, nil
}

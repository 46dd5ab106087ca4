// Package matrix builds the 32x32 substitution matrices the align package
// scores local alignments with.
package matrix

// Matrix32 is a dense substitution table indexed by character folded into
// [0, 32) via c & 31, matching the convention used throughout this module.
type Matrix32 [32][32]float64

// stopPenalty is applied to row/column 0, the slot reserved for the stop or
// unknown character, so that an alignment can never route through it.
const stopPenalty = -30000

// Identity returns a substitution matrix scoring every identical character
// pair as match and every other pair as mismatch. Row/column 0 still carries
// the stop penalty so that the convention is consistent across matrices.
func Identity(match, mismatch float64) Matrix32 {
	var m Matrix32
	for i := 0; i < 32; i++ {
		for j := 0; j < 32; j++ {
			if i == j {
				m[i][j] = match
			} else {
				m[i][j] = mismatch
			}
		}
	}
	applyStopPenalty(&m)
	return m
}

// pam250Alphabet lists the amino acid letters in the order the rows and
// columns of pam250Table are published.
var pam250Alphabet = []byte("ARNDCQEGHILKMFPSTWYVBZX")

var pam250Table = [23][23]int{
	{2, -2, 0, 0, -2, 0, 0, 1, -1, -1, -2, -1, -1, -3, 1, 1, 1, -6, -3, 0, 0, 0, 0},
	{-2, 6, 0, -1, -4, 1, -1, -3, 2, -2, -3, 3, 0, -4, 0, 0, -1, 2, -4, -2, -1, 0, -1},
	{0, 0, 2, 2, -4, 1, 1, 0, 2, -2, -3, 1, -2, -3, 0, 1, 0, -4, -2, -2, 2, 1, 0},
	{0, -1, 2, 4, -5, 2, 3, 1, 1, -2, -4, 0, -3, -6, -1, 0, 0, -7, -4, -2, 3, 3, -1},
	{-2, -4, -4, -5, 12, -5, -5, -3, -3, -2, -6, -5, -5, -4, -3, 0, -2, -8, 0, -2, -4, -5, -3},
	{0, 1, 1, 2, -5, 4, 2, -1, 3, -2, -2, 1, -1, -5, 0, -1, -1, -5, -4, -2, 1, 3, -1},
	{0, -1, 1, 3, -5, 2, 4, 0, 1, -2, -3, 0, -2, -5, -1, 0, 0, -7, -4, -2, 3, 3, -1},
	{1, -3, 0, 1, -3, -1, 0, 5, -2, -3, -4, -2, -3, -5, 0, 1, 0, -7, -5, -1, 0, 0, -1},
	{-1, 2, 2, 1, -3, 3, 1, -2, 6, -2, -2, 0, -2, -2, 0, -1, -1, -3, 0, -2, 1, 2, 0},
	{-1, -2, -2, -2, -2, -2, -2, -3, -2, 5, 2, -2, 2, 1, -2, -1, 0, -5, -1, 4, -2, -2, -1},
	{-2, -3, -3, -4, -6, -2, -3, -4, -2, 2, 6, -3, 4, 2, -3, -3, -2, -2, -1, 2, -3, -3, -1},
	{-1, 3, 1, 0, -5, 1, 0, -2, 0, -2, -3, 5, 0, -5, -1, 0, 0, -3, -4, -2, 1, 0, -1},
	{-1, 0, -2, -3, -5, -1, -2, -3, -2, 2, 4, 0, 6, 0, -2, -2, -1, -4, -2, 2, -2, -2, -1},
	{-3, -4, -3, -6, -4, -5, -5, -5, -2, 1, 2, -5, 0, 9, -5, -3, -3, 0, 7, -1, -4, -5, -2},
	{1, 0, 0, -1, -3, 0, -1, 0, 0, -2, -3, -1, -2, -5, 6, 1, 0, -6, -5, -1, -1, 0, -1},
	{1, 0, 1, 0, 0, -1, 0, 1, -1, -1, -3, 0, -2, -3, 1, 2, 1, -2, -3, -1, 0, 0, 0},
	{1, -1, 0, 0, -2, -1, 0, 0, -1, 0, -2, 0, -1, -3, 0, 1, 3, -5, -3, 0, 0, -1, 0},
	{-6, 2, -4, -7, -8, -5, -7, -7, -3, -5, -2, -3, -4, 0, -6, -2, -5, 17, 0, -6, -5, -6, -4},
	{-3, -4, -2, -4, 0, -4, -4, -5, 0, -1, -1, -4, -2, 7, -5, -3, -3, 0, 10, -2, -3, -4, -2},
	{0, -2, -2, -2, -2, -2, -2, -1, -2, 4, 2, -2, 2, -1, -1, -1, 0, -6, -2, 4, -2, -2, -1},
	{0, -1, 2, 3, -4, 1, 3, 0, 1, -2, -3, 1, -2, -4, -1, 0, 0, -5, -3, -2, 3, 2, -1},
	{0, 0, 1, 3, -5, 3, 3, 0, 2, -2, -3, 0, -2, -5, 0, 0, -1, -6, -4, -2, 2, 3, -1},
	{0, -1, 0, -1, -3, -1, -1, -1, 0, -1, -1, -1, -1, -2, -1, 0, 0, -4, -2, -1, -1, -1, -1},
}

// PAM250 builds a 32x32 matrix from the classic Dayhoff PAM250 table, folding
// each amino acid letter through its ASCII value mod 32 the way the reference
// converter does, and guarding the stop-character slot with a steep penalty.
func PAM250() Matrix32 {
	var m Matrix32
	for ri, ra := range pam250Alphabet {
		for ci, rb := range pam250Alphabet {
			idxA := int(ra) % 32
			idxB := int(rb) % 32
			m[idxA][idxB] = float64(pam250Table[ri][ci])
		}
	}
	applyStopPenalty(&m)
	return m
}

func applyStopPenalty(m *Matrix32) {
	for i := 0; i < 32; i++ {
		m[0][i] = stopPenalty
		m[i][0] = stopPenalty
	}
}

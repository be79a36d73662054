package parallel

import (
	"math/bits"
	"sync/atomic"
)

// RowCoverage records which rows of a dispatch have been visited using an
// atomic bitmap. Workers mark rows concurrently without locks.
//
// The bitmap uses one bit per row, packed into uint64 words (64 rows per word).
type RowCoverage struct {
	words []atomic.Uint64
	rows  int
}

// NewRowCoverage creates a tracker for rows [0, rows) with no row visited.
func NewRowCoverage(rows int) *RowCoverage {
	rows = max(rows, 0)
	return &RowCoverage{
		words: make([]atomic.Uint64, (rows+63)/64),
		rows:  rows,
	}
}

// Mark records row as visited and reports whether this was the first visit.
// Out-of-range rows are ignored and report false.
func (c *RowCoverage) Mark(row int) bool {
	if row < 0 || row >= c.rows {
		return false
	}
	bit := uint64(1) << (row & 63)
	old := c.words[row/64].Or(bit)
	return old&bit == 0
}

// Visited reports whether row has been marked.
func (c *RowCoverage) Visited(row int) bool {
	if row < 0 || row >= c.rows {
		return false
	}
	return c.words[row/64].Load()&(uint64(1)<<(row&63)) != 0
}

// Count returns the number of visited rows.
func (c *RowCoverage) Count() int {
	n := 0
	for i := range c.words {
		n += bits.OnesCount64(c.words[i].Load())
	}
	return n
}

// Complete reports whether every row has been visited.
func (c *RowCoverage) Complete() bool {
	return c.Count() == c.rows
}

// Missing returns the rows that have not been visited, in ascending order.
func (c *RowCoverage) Missing() []int {
	var missing []int
	for row := 0; row < c.rows; row++ {
		if !c.Visited(row) {
			missing = append(missing, row)
		}
	}
	return missing
}

// Reset clears every mark.
func (c *RowCoverage) Reset() {
	for i := range c.words {
		c.words[i].Store(0)
	}
}

package parallel

import "fmt"

// WorkRange is a half-open interval [Start, End) of rows assigned to one task.
type WorkRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r WorkRange) Len() int {
	return r.End - r.Start
}

// String returns the range in interval notation.
func (r WorkRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Partition splits height rows into min(height, capacity) contiguous ranges.
//
// Ranges are balanced within one row: with rows = height / tasks and
// rem = height % tasks, task t covers
//
//	start = t*rows + min(t, rem)
//	end   = start + rows + (1 if t < rem)
//
// so the first rem tasks get one extra row. The ranges are ordered, disjoint
// and cover [0, height) exactly. A capacity below 1 is treated as 1 and a
// non-positive height yields no ranges.
func Partition(height, capacity int) []WorkRange {
	if height <= 0 {
		return nil
	}
	capacity = max(capacity, 1)

	tasks := min(height, capacity)
	rows := height / tasks
	rem := height % tasks

	ranges := make([]WorkRange, tasks)
	for t := range tasks {
		start := t*rows + min(t, rem)
		end := start + rows
		if t < rem {
			end++
		}
		ranges[t] = WorkRange{Start: start, End: end}
	}
	return ranges
}

// Package parallel provides the row-partitioned parallel dispatch used by mandel.
//
// An iteration space of height rows is split into at most one contiguous
// WorkRange per worker (see Partition). Each range becomes one task on a
// WorkerPool, and the dispatching goroutine blocks until every task has
// returned. Key properties:
//
//   - Deterministic partition for a fixed height and pool capacity
//   - Every row is visited exactly once, tracked by an atomic RowCoverage bitmap
//   - Callback errors and panics are collected and returned after the join
//   - Scratch buffers for multi-pass renders are reused via FieldPool
//
// Callbacks run concurrently on different tasks. They must only write state
// owned by the rows they are given.
package parallel

import (
	"errors"
	"fmt"
)

// BlockWidth is the default column block size for block dispatch.
// It is a multiple of every supported vector width.
const BlockWidth = 64

// Dispatch errors.
var (
	// ErrWorkerFailure is wrapped by every error produced inside a task.
	ErrWorkerFailure = errors.New("parallel: worker task failed")

	// ErrWorkerPanic is returned (wrapped in a TaskError) when a callback panics.
	ErrWorkerPanic = errors.New("parallel: worker task panicked")

	// ErrPoolClosed is returned when dispatching on a closed pool.
	ErrPoolClosed = errors.New("parallel: worker pool is closed")

	// ErrIncompleteDispatch is returned when the rows visited by a dispatch
	// do not cover the iteration space exactly once.
	ErrIncompleteDispatch = errors.New("parallel: dispatch did not cover the iteration space")
)

// TaskError describes the failure of a single dispatch task.
// It matches both ErrWorkerFailure and the underlying cause with errors.Is.
type TaskError struct {
	// Task is the 0-based task index.
	Task int

	// Range is the row range the task was assigned.
	Range WorkRange

	// Row is the row being processed when the task failed.
	Row int

	// Err is the callback error or the recovered panic.
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("parallel: task %d (rows %v) failed at row %d: %v", e.Task, e.Range, e.Row, e.Err)
}

// Unwrap exposes both ErrWorkerFailure and the cause.
func (e *TaskError) Unwrap() []error {
	return []error{ErrWorkerFailure, e.Err}
}

// Dispatcher runs row-partitioned work on a WorkerPool.
//
// A Dispatcher may be reused for any number of sequential dispatch calls.
// Concurrent dispatch calls on the same Dispatcher are not supported.
type Dispatcher struct {
	pool     *WorkerPool
	ownsPool bool
}

// NewDispatcher creates a dispatcher with its own pool of the given size.
// If workers <= 0, GOMAXPROCS is used.
func NewDispatcher(workers int) *Dispatcher {
	return &Dispatcher{pool: NewWorkerPool(workers), ownsPool: true}
}

// NewDispatcherWithPool creates a dispatcher on an existing pool.
// Close does not shut the pool down.
func NewDispatcherWithPool(pool *WorkerPool) *Dispatcher {
	return &Dispatcher{pool: pool}
}

// Capacity returns the maximum number of tasks per dispatch.
func (d *Dispatcher) Capacity() int {
	return d.pool.Workers()
}

// Close releases the pool if the dispatcher created it.
func (d *Dispatcher) Close() {
	if d.ownsPool {
		d.pool.Close()
	}
}

// Rows invokes fn once for every row in [0, height), partitioned across the
// pool, and returns after all tasks have finished.
//
// A task stops at the first error returned by fn; other tasks run to
// completion. All task errors are joined in task order. A height of zero
// returns immediately.
func (d *Dispatcher) Rows(height int, fn func(y int) error) error {
	if height <= 0 || fn == nil {
		return nil
	}
	if !d.pool.IsRunning() {
		return ErrPoolClosed
	}

	ranges := Partition(height, d.pool.Workers())
	coverage := NewRowCoverage(height)
	errs := make([]error, len(ranges))

	work := make([]func(), len(ranges))
	for t, r := range ranges {
		work[t] = func() {
			errs[t] = runRange(t, r, coverage, fn)
		}
	}

	if ran := d.pool.ExecuteAll(work); ran != len(work) {
		return fmt.Errorf("%w: %d of %d tasks ran", ErrPoolClosed, ran, len(work))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if !coverage.Complete() {
		missing := coverage.Missing()
		return fmt.Errorf("%w: %d rows not visited, first %d", ErrIncompleteDispatch, len(missing), missing[0])
	}
	return nil
}

// Elements invokes fn for every (y, x) pair of a height×width space.
// Rows are partitioned as in Rows; columns are visited in order within a row.
func (d *Dispatcher) Elements(height, width int, fn func(y, x int) error) error {
	if width <= 0 || fn == nil {
		return nil
	}
	return d.Rows(height, func(y int) error {
		for x := range width {
			if err := fn(y, x); err != nil {
				return err
			}
		}
		return nil
	})
}

// Blocks invokes fn for every block of up to blockWidth columns in each row.
// fn receives the row, the first column of the block and the block length n;
// only the last block of a row may be shorter than blockWidth.
// A blockWidth <= 0 selects BlockWidth.
func (d *Dispatcher) Blocks(height, width, blockWidth int, fn func(y, x, n int) error) error {
	if width <= 0 || fn == nil {
		return nil
	}
	if blockWidth <= 0 {
		blockWidth = BlockWidth
	}
	return d.Rows(height, func(y int) error {
		for x := 0; x < width; x += blockWidth {
			if err := fn(y, x, min(blockWidth, width-x)); err != nil {
				return err
			}
		}
		return nil
	})
}

// runRange executes fn over one task's rows, converting a panic into a TaskError.
func runRange(task int, r WorkRange, coverage *RowCoverage, fn func(y int) error) (err error) {
	y := r.Start
	defer func() {
		if rec := recover(); rec != nil {
			err = &TaskError{Task: task, Range: r, Row: y, Err: fmt.Errorf("%w: %v", ErrWorkerPanic, rec)}
		}
	}()

	for ; y < r.End; y++ {
		if !coverage.Mark(y) {
			return &TaskError{Task: task, Range: r, Row: y,
				Err: fmt.Errorf("%w: row %d visited twice", ErrIncompleteDispatch, y)}
		}
		if err := fn(y); err != nil {
			return &TaskError{Task: task, Range: r, Row: y, Err: err}
		}
	}
	return nil
}

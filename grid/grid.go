// Package grid provides a dense, owned, row-major array of scalar elements.
//
// Dense is the storage substrate for every image and intermediate field
// produced by mandel. Its rank is fixed to 1, 2 or 3 at construction and its
// shape never changes afterwards. All ranks share the same row-major layout:
//
//	rank 1: offset = i
//	rank 2: offset = i*D2 + j
//	rank 3: offset = i*D2*D3 + j*D3 + k
//
// Thread safety: Dense is not synchronized. Concurrent writers must touch
// disjoint outer rows (see Row), which is how the render pipeline uses it.
package grid

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// Common errors for grid construction.
var (
	// ErrInvalidShape is returned when a shape has an unsupported rank,
	// a negative dimension, a size that overflows the address space, or
	// does not match the supplied element count.
	ErrInvalidShape = errors.New("grid: invalid shape")
)

// MaxRank is the highest supported rank.
const MaxRank = 3

// Scalar is the set of element types a Dense can hold.
type Scalar interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~float32 | ~float64
}

// Dense is a fixed-shape contiguous array of rank 1 to 3.
//
// A Dense owns its buffer exclusively. Clone performs a deep copy; passing
// the pointer around transfers the buffer without copying.
type Dense[T Scalar] struct {
	data  []T
	shape [MaxRank]int
	rank  int
}

// New creates a zero-filled grid with the given shape.
// Returns ErrInvalidShape if the rank is not in [1, 3], any dimension is
// negative, or the element count overflows.
func New[T Scalar](shape ...int) (*Dense[T], error) {
	n, err := checkShape(shape, elemSize[T]())
	if err != nil {
		return nil, err
	}
	g := &Dense[T]{data: make([]T, n), rank: len(shape)}
	copy(g.shape[:], shape)
	return g, nil
}

// Filled creates a grid with every element set to value.
func Filled[T Scalar](value T, shape ...int) (*Dense[T], error) {
	g, err := New[T](shape...)
	if err != nil {
		return nil, err
	}
	g.Fill(value)
	return g, nil
}

// FromSlice creates a grid initialized with a copy of values.
// Returns ErrInvalidShape if len(values) differs from the shape's element count.
func FromSlice[T Scalar](values []T, shape ...int) (*Dense[T], error) {
	g, err := New[T](shape...)
	if err != nil {
		return nil, err
	}
	if len(values) != len(g.data) {
		return nil, fmt.Errorf("%w: %d initializer values for shape %v (%d elements)",
			ErrInvalidShape, len(values), shape, len(g.data))
	}
	copy(g.data, values)
	return g, nil
}

// Wrap creates a grid that takes ownership of values without copying.
// The caller must not use values afterwards except through the grid.
// Returns ErrInvalidShape if len(values) differs from the shape's element count.
func Wrap[T Scalar](values []T, shape ...int) (*Dense[T], error) {
	n, err := checkShape(shape, elemSize[T]())
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: buffer of %d elements for shape %v (%d elements)",
			ErrInvalidShape, len(values), shape, n)
	}
	g := &Dense[T]{data: values, rank: len(shape)}
	copy(g.shape[:], shape)
	return g, nil
}

func elemSize[T Scalar]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// checkShape validates shape and returns its element count. The byte size
// of the buffer (count * size) must fit in an int.
func checkShape(shape []int, size int) (int, error) {
	if len(shape) < 1 || len(shape) > MaxRank {
		return 0, fmt.Errorf("%w: rank %d not in [1, %d]", ErrInvalidShape, len(shape), MaxRank)
	}
	for i, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: dimension %d is negative (%d)", ErrInvalidShape, i, d)
		}
	}
	n := 1
	for _, d := range shape {
		if d == 0 {
			return 0, nil
		}
		if n > math.MaxInt/d {
			return 0, fmt.Errorf("%w: shape %v overflows", ErrInvalidShape, shape)
		}
		n *= d
	}
	if n > math.MaxInt/size {
		return 0, fmt.Errorf("%w: shape %v overflows", ErrInvalidShape, shape)
	}
	return n, nil
}

// Rank returns the number of dimensions.
func (g *Dense[T]) Rank() int {
	return g.rank
}

// Shape returns a copy of the grid's dimensions.
func (g *Dense[T]) Shape() []int {
	s := make([]int, g.rank)
	copy(s, g.shape[:g.rank])
	return s
}

// Dim returns the size of dimension i.
func (g *Dense[T]) Dim(i int) int {
	if i < 0 || i >= g.rank {
		panic(fmt.Sprintf("grid: dimension %d out of range for rank %d", i, g.rank))
	}
	return g.shape[i]
}

// Len returns the total number of elements.
func (g *Dense[T]) Len() int {
	return len(g.data)
}

// Data returns the underlying row-major buffer.
// Writes through the returned slice modify the grid.
func (g *Dense[T]) Data() []T {
	return g.data
}

// Fill sets every element to value.
func (g *Dense[T]) Fill(value T) {
	for i := range g.data {
		g.data[i] = value
	}
}

// Offset returns the linear offset of the element at idx.
// Panics if the number of indices differs from the rank or any index is out of range.
func (g *Dense[T]) Offset(idx ...int) int {
	if len(idx) != g.rank {
		panic(fmt.Sprintf("grid: %d indices for rank %d", len(idx), g.rank))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= g.shape[d] {
			panic(fmt.Sprintf("grid: index %d out of range [0, %d) in dimension %d", i, g.shape[d], d))
		}
		off = off*g.shape[d] + i
	}
	return off
}

// At returns the element at idx.
func (g *Dense[T]) At(idx ...int) T {
	return g.data[g.Offset(idx...)]
}

// Set stores value at idx.
func (g *Dense[T]) Set(value T, idx ...int) {
	g.data[g.Offset(idx...)] = value
}

// At2 returns the element at (i, j) of a rank-2 grid.
func (g *Dense[T]) At2(i, j int) T {
	return g.data[g.offset2(i, j)]
}

// Set2 stores value at (i, j) of a rank-2 grid.
func (g *Dense[T]) Set2(i, j int, value T) {
	g.data[g.offset2(i, j)] = value
}

// At3 returns the element at (i, j, k) of a rank-3 grid.
func (g *Dense[T]) At3(i, j, k int) T {
	return g.data[g.offset3(i, j, k)]
}

// Set3 stores value at (i, j, k) of a rank-3 grid.
func (g *Dense[T]) Set3(i, j, k int, value T) {
	g.data[g.offset3(i, j, k)] = value
}

func (g *Dense[T]) offset2(i, j int) int {
	if g.rank != 2 {
		panic(fmt.Sprintf("grid: 2 indices for rank %d", g.rank))
	}
	if uint(i) >= uint(g.shape[0]) || uint(j) >= uint(g.shape[1]) {
		panic(fmt.Sprintf("grid: index (%d, %d) out of range for shape %v", i, j, g.Shape()))
	}
	return i*g.shape[1] + j
}

func (g *Dense[T]) offset3(i, j, k int) int {
	if g.rank != 3 {
		panic(fmt.Sprintf("grid: 3 indices for rank %d", g.rank))
	}
	if uint(i) >= uint(g.shape[0]) || uint(j) >= uint(g.shape[1]) || uint(k) >= uint(g.shape[2]) {
		panic(fmt.Sprintf("grid: index (%d, %d, %d) out of range for shape %v", i, j, k, g.Shape()))
	}
	return i*g.shape[1]*g.shape[2] + j*g.shape[2] + k
}

// RowLen returns the number of elements in one outer row.
func (g *Dense[T]) RowLen() int {
	n := 1
	for d := 1; d < g.rank; d++ {
		n *= g.shape[d]
	}
	return n
}

// Row returns the contiguous elements of outer index i.
// For a rank-3 H×W×C image this is the W*C values of row i.
// The returned slice aliases the grid buffer.
func (g *Dense[T]) Row(i int) []T {
	if uint(i) >= uint(g.shape[0]) {
		panic(fmt.Sprintf("grid: row %d out of range [0, %d)", i, g.shape[0]))
	}
	n := g.RowLen()
	return g.data[i*n : (i+1)*n : (i+1)*n]
}

// Clone returns a deep copy of the grid.
func (g *Dense[T]) Clone() *Dense[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Dense[T]{data: data, shape: g.shape, rank: g.rank}
}

// Equal reports whether g and other have the same shape and elements.
// A nil grid only equals another nil grid.
func (g *Dense[T]) Equal(other *Dense[T]) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rank != other.rank || g.shape != other.shape {
		return false
	}
	for i := range g.data {
		if g.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// String returns a short description such as "grid.Dense[3](480x640x3)".
func (g *Dense[T]) String() string {
	s := fmt.Sprintf("grid.Dense[%d](", g.rank)
	for d := 0; d < g.rank; d++ {
		if d > 0 {
			s += "x"
		}
		s += fmt.Sprint(g.shape[d])
	}
	return s + ")"
}

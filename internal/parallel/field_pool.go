package parallel

import "sync"

// FieldPool provides reuse of float32 scratch fields via sync.Pool.
//
// Multi-pass renders (histogram equalization) need an H×W intermediate
// field that is discarded once the image is shaded. Pooling it by length
// keeps repeated renders of the same size from reallocating.
//
// Thread safety: FieldPool is safe for concurrent use.
type FieldPool struct {
	// pools holds one sync.Pool per buffer length.
	pools sync.Map
}

// NewFieldPool creates a new field pool.
func NewFieldPool() *FieldPool {
	return &FieldPool{}
}

// Get returns a zeroed buffer of exactly n elements.
// Returns nil for n <= 0.
func (p *FieldPool) Get(n int) []float32 {
	if n <= 0 {
		return nil
	}
	buf := *p.poolFor(n).Get().(*[]float32)
	clear(buf)
	return buf
}

// Put returns a buffer to the pool for reuse.
// Empty buffers are ignored.
func (p *FieldPool) Put(buf []float32) {
	if len(buf) == 0 {
		return
	}
	p.poolFor(len(buf)).Put(&buf)
}

// poolFor gets or creates the sync.Pool for buffers of length n.
func (p *FieldPool) poolFor(n int) *sync.Pool {
	if pool, ok := p.pools.Load(n); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			buf := make([]float32, n)
			return &buf
		},
	}

	// Another goroutine may have stored a pool first; use theirs.
	actual, _ := p.pools.LoadOrStore(n, newPool)
	return actual.(*sync.Pool)
}

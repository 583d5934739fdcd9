package memory

import "sync"

// PoolAllocator recycles released buffers keyed by their exact capacity.
// Doubling growth produces a small set of recurring sizes, so buffers
// freed by one vector are picked up by the next one growing through the
// same size.
type PoolAllocator[T any] struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{pools: make(map[int]*sync.Pool)}
}

func (p *PoolAllocator[T]) pool(n int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sp, ok := p.pools[n]
	if !ok {
		sp = &sync.Pool{}
		p.pools[n] = sp
	}
	return sp
}

func (p *PoolAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if bp, ok := p.pool(n).Get().(*[]T); ok {
		return *bp, nil
	}
	return makeSlots[T](n)
}

// Release zeroes buf so pooled slots do not pin old element references.
func (p *PoolAllocator[T]) Release(buf []T) {
	if len(buf) == 0 {
		return
	}
	clear(buf)
	p.pool(len(buf)).Put(&buf)
}

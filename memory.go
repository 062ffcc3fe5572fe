package chunkbuf

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Buffer is a single reference-counted allocation. The last Unref returns a
// pooled Buffer to its Pool; a Buffer without a pool is left to the garbage
// collector.
type Buffer struct {
	Data []byte
	refs int32
	pool *Pool
}

func NewBuffer(pool *Pool) *Buffer {
	return &Buffer{
		Data: make([]byte, pool.bufSize),
		refs: 0,
		pool: pool,
	}
}

func (buf *Buffer) Size() int {
	return len(buf.Data)
}

func (buf *Buffer) Ref() {
	atomic.AddInt32(&buf.refs, 1)
}

func (buf *Buffer) Unref() {
	if atomic.AddInt32(&buf.refs, -1) < 1 {
		if buf.pool != nil {
			buf.pool.put(buf)
		}
	}
}

// Pool hands out Buffer allocations in a single power-of-two size class. A
// Buffer handed out by Get may be larger than the size the pool was asked
// for; callers that promise exact sizes to their consumers need to track
// their own ceiling (see StrictBuffer).
type Pool struct {
	id      string
	bufSize int
	store   *sync.Pool
	ii      InstrumentInstance
}

func NewPool(id string, bufSize int, ii InstrumentInstance) *Pool {
	pool := &Pool{
		id:      id,
		bufSize: sizeClass(bufSize),
		store:   new(sync.Pool),
		ii:      ii,
	}
	pool.store.New = pool.allocate
	return pool
}

func (pool *Pool) BufSize() int {
	return pool.bufSize
}

func (pool *Pool) Get() *Buffer {
	buf := pool.store.Get().(*Buffer)
	buf.Ref()
	return buf
}

// GetSized returns a Buffer with at least sz bytes of storage. Requests
// within the pool's size class come from the pool; larger requests get a
// one-off allocation that is not returned to the store.
func (pool *Pool) GetSized(sz int) *Buffer {
	if sz <= pool.bufSize {
		return pool.Get()
	}
	if pool.ii != nil {
		pool.ii.Allocate(pool.id)
	}
	buf := &Buffer{Data: make([]byte, sizeClass(sz))}
	buf.Ref()
	return buf
}

func (pool *Pool) put(buf *Buffer) {
	pool.store.Put(buf)
}

func (pool *Pool) allocate() interface{} {
	if pool.ii != nil {
		pool.ii.Allocate(pool.id)
	}
	return NewBuffer(pool)
}

// sizeClass rounds sz up to the next power of two.
func sizeClass(sz int) int {
	if sz < 1 {
		panic(fmt.Sprintf("invalid size [%d]", sz))
	}
	class := 1
	for class < sz {
		class <<= 1
		if class <= 0 {
			panic(fmt.Sprintf("size class overflow [%d]", sz))
		}
	}
	return class
}

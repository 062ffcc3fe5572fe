package chunkbuf

import "fmt"

// StrictBuffer is a non-contiguous output buffer with a strict limit on
// chunk sizes: every chunk it produces, by flushing or by splitting an
// ingested byte range, has a length no larger than the configured limit.
// Only a still-filling staging remainder may be shorter. The guarantee costs
// extra bookkeeping and sometimes extra queue entries; applications that
// tolerate oversized chunks should prefer LooseBuffer.
//
// The pool hands out power-of-two allocation classes, so the raw staging
// capacity can legitimately exceed the limit; cap tracks the usable ceiling
// independently and every write-side operation respects it.
type StrictBuffer struct {
	inner *inner
	cap   int
}

// NewStrictBuffer creates a StrictBuffer with the chunk size limit set to a
// default value.
func NewStrictBuffer() *StrictBuffer {
	return NewStrictBufferWithProfile(NewBaselineProfile())
}

// NewStrictBufferWithChunkSize creates a StrictBuffer with the given chunk
// size limit.
func NewStrictBufferWithChunkSize(chunkSize int) *StrictBuffer {
	profile := NewBaselineProfile()
	profile.ChunkSize = chunkSize
	return NewStrictBufferWithProfile(profile)
}

// NewStrictBufferWithProfile is the fully detailed constructor, taking the
// chunk size limit and an upper estimate of the number of chunks the buffer
// is expected to hold at any moment.
func NewStrictBufferWithProfile(profile *Profile) *StrictBuffer {
	return &StrictBuffer{inner: newInner(profile, fmt.Sprintf("strict_%d", bufferSeq.Next()))}
}

// ChunkSizeLimit returns the size used as the limit when producing chunks.
// Produced chunks may be smaller, depending on the pattern of use.
func (self *StrictBuffer) ChunkSizeLimit() int {
	return self.inner.chunkSize
}

func (self *StrictBuffer) IsEmpty() bool {
	return self.inner.isEmpty()
}

func (self *StrictBuffer) Remaining() int {
	return self.inner.remaining()
}

// RemainingWritable returns the bytes writable at the current cursor within
// the usable ceiling.
func (self *StrictBuffer) RemainingWritable() int {
	return self.cap - self.inner.staging.len()
}

// Writable returns the unwritten suffix of the staging region, clamped to
// the usable ceiling so a full commit can never stage more than the limit.
// When the staged length reaches the ceiling, or the region has no spare
// tail left, capacity is renegotiated and the ceiling recomputed from the
// fresh allocation.
func (self *StrictBuffer) Writable() []byte {
	if self.inner.staging.len() == self.cap || self.inner.staging.spare() == 0 {
		newCap := self.inner.reserveStaging()
		if newCap > self.inner.chunkSize {
			newCap = self.inner.chunkSize
		}
		self.cap = newCap
	}
	view := self.inner.staging.writable()
	if limit := self.cap - self.inner.staging.len(); len(view) > limit {
		view = view[:limit]
	}
	return view
}

// Commit advances the write cursor over cnt filled bytes of the last
// Writable view. Committing past the usable ceiling panics.
func (self *StrictBuffer) Commit(cnt int) {
	if newLen := self.inner.staging.len() + cnt; newLen > self.cap {
		panic(fmt.Sprintf("commit [%d] exceeds usable capacity [%d > %d]", cnt, newLen, self.cap))
	}
	self.inner.staging.commit(cnt)
}

// Reserve guarantees the next Writable view holds at least additional
// bytes. Staged bytes that could not coexist with the reservation under the
// limit are frozen into a chunk first. Reservations beyond the chunk size
// limit cannot be honored and panic.
func (self *StrictBuffer) Reserve(additional int) {
	if additional > self.inner.chunkSize {
		panic(fmt.Sprintf("reservation [%d] exceeds chunk size limit [%d]", additional, self.inner.chunkSize))
	}
	if self.inner.staging.len()+additional > self.inner.chunkSize {
		self.Flush()
	}
	self.inner.reserve(additional)
	newCap := self.inner.staging.capacity()
	if newCap > self.inner.chunkSize {
		newCap = self.inner.chunkSize
	}
	self.cap = newCap
}

// Flush freezes any staged bytes into a new complete chunk. The staged
// length never exceeds the limit, so the produced chunk honors it.
func (self *StrictBuffer) Flush() {
	if self.inner.staging.len() > self.inner.chunkSize {
		panic(fmt.Sprintf("staged [%d] exceeds chunk size limit [%d]", self.inner.staging.len(), self.inner.chunkSize))
	}
	self.inner.flush()
}

// PutBytes appends caller-owned bytes without copying them, splitting the
// range so that every queued chunk except the last is exactly the limit and
// the last is no larger.
func (self *StrictBuffer) PutBytes(data []byte) {
	if len(data) < 1 {
		return
	}
	self.Flush()
	limit := self.inner.chunkSize
	parts := 0
	for len(data) > limit {
		self.inner.pushChunk(NewChunk(data[:limit]))
		data = data[limit:]
		parts++
	}
	self.inner.pushChunk(NewChunk(data))
	if parts > 0 {
		self.inner.ii.SplitChunk(parts + 1)
	}
}

// PushChunk appends a chunk without copying its bytes, splitting it into
// limit-sized pieces that share the backing storage when it is too wide.
// The caller's reference is taken over (or released after a split). Empty
// chunks are dropped.
func (self *StrictBuffer) PushChunk(chunk *Chunk) {
	if chunk.Len() < 1 {
		return
	}
	self.Flush()
	limit := self.inner.chunkSize
	if chunk.Len() <= limit {
		self.inner.pushChunk(chunk)
		return
	}
	parts := 0
	for off := 0; off < chunk.Len(); off += limit {
		end := off + limit
		if end > chunk.Len() {
			end = chunk.Len()
		}
		self.inner.pushChunk(chunk.Slice(off, end))
		parts++
	}
	chunk.Release()
	self.inner.ii.SplitChunk(parts)
}

// Front returns the first unread contiguous slice: the oldest chunk, or the
// staged bytes when no chunks are queued. Gather is the better fit for
// vectored output.
func (self *StrictBuffer) Front() []byte {
	return self.inner.front()
}

// Gather fills dst with the unread slices in read order, chunks then staged
// bytes, and returns the count filled. Every filled slice except a trailing
// staging remainder is no longer than the limit.
func (self *StrictBuffer) Gather(dst [][]byte) int {
	return self.inner.gather(dst)
}

// Advance consumes cnt bytes from the front, dropping chunk references as
// they are passed. An advance that ends inside the staging region lowers the
// usable ceiling by the bytes consumed there, keeping it consistent with the
// region's occupancy. Advancing past Remaining panics.
func (self *StrictBuffer) Advance(cnt int) {
	if adv, inStaging := self.inner.advance(cnt); inStaging {
		self.cap -= adv
	}
}

// Extract removes up to cnt unread bytes as one contiguous chunk, copying
// only when the bytes span more than one source. An extract that reaches
// into the staging region lowers the usable ceiling by the bytes taken
// there, keeping it consistent with the region's occupancy.
func (self *StrictBuffer) Extract(cnt int) *Chunk {
	out, stagingAdv := self.inner.extract(cnt)
	self.cap -= stagingAdv
	return out
}

// TakeAll drains the buffer into one contiguous chunk. The result is not
// bounded by the limit; it is a departure from chunked delivery.
func (self *StrictBuffer) TakeAll() *Chunk {
	self.cap = 0
	return self.inner.takeAll()
}

// DrainChunks removes the complete chunks from the buffer and returns an
// iterator over them. Staged bytes stay behind.
func (self *StrictBuffer) DrainChunks() *DrainIter {
	return self.inner.drainChunks()
}

// IntoChunks consumes the buffer, folding a non-empty staging region in as
// the final chunk, and returns an iterator over everything. The buffer must
// not be used afterwards.
func (self *StrictBuffer) IntoChunks() *ChunkIter {
	if self.inner.staging.len() > self.inner.chunkSize {
		panic(fmt.Sprintf("staged [%d] exceeds chunk size limit [%d]", self.inner.staging.len(), self.inner.chunkSize))
	}
	return self.inner.intoChunks()
}

// Close releases any unread content, returning pooled storage, and shuts
// down the instrument instance. The buffer must not be used afterwards.
func (self *StrictBuffer) Close() {
	self.cap = 0
	self.inner.close()
}

func (self *StrictBuffer) stagingCapacity() int {
	return self.inner.staging.capacity()
}

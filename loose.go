package chunkbuf

import "fmt"

// LooseBuffer is a non-contiguous output buffer with a loose adherence to
// the preferred chunk size. Small writes coalesce in the staging region;
// once the staged length reaches the configured chunk size the content is
// frozen into a chunk on the queue. Ingested byte ranges are queued whole,
// however large, trading chunk-size uniformity for zero copies and fewer
// queue entries. Applications that need every produced chunk capped should
// use StrictBuffer instead.
//
// A LooseBuffer is owned by one writer/reader context; it is not safe for
// concurrent mutation.
type LooseBuffer struct {
	inner *inner
}

// NewLooseBuffer creates a LooseBuffer with the preferred chunk size set to
// a default value.
func NewLooseBuffer() *LooseBuffer {
	return NewLooseBufferWithProfile(NewBaselineProfile())
}

// NewLooseBufferWithChunkSize creates a LooseBuffer with the given chunk
// size to prefer.
func NewLooseBufferWithChunkSize(chunkSize int) *LooseBuffer {
	profile := NewBaselineProfile()
	profile.ChunkSize = chunkSize
	return NewLooseBufferWithProfile(profile)
}

// NewLooseBufferWithProfile is the fully detailed constructor, taking the
// preferred chunk size and an upper estimate of the number of chunks the
// buffer is expected to hold at any moment.
func NewLooseBufferWithProfile(profile *Profile) *LooseBuffer {
	return &LooseBuffer{inner: newInner(profile, fmt.Sprintf("loose_%d", bufferSeq.Next()))}
}

// ChunkSizeHint returns the size used as the threshold for freezing chunks.
// Produced chunks may be larger or smaller, depending on pool allocation
// granularity and the pattern of use.
func (self *LooseBuffer) ChunkSizeHint() int {
	return self.inner.chunkSize
}

func (self *LooseBuffer) IsEmpty() bool {
	return self.inner.isEmpty()
}

func (self *LooseBuffer) Remaining() int {
	return self.inner.remaining()
}

// RemainingWritable returns the bytes writable at the current cursor without
// renegotiating the staging allocation.
func (self *LooseBuffer) RemainingWritable() int {
	return self.inner.staging.spare()
}

// Writable returns the unwritten suffix of the staging region, to be filled
// and then committed with Commit. When the region is full, capacity is
// renegotiated first; the view may be larger than the chunk size hint due to
// pool allocation granularity.
func (self *LooseBuffer) Writable() []byte {
	if self.inner.staging.spare() == 0 {
		self.inner.reserveStaging()
	}
	return self.inner.staging.writable()
}

// Commit advances the write cursor over cnt filled bytes of the last
// Writable view. Staged content at or past the chunk size hint is flushed.
// Committing past the view panics.
func (self *LooseBuffer) Commit(cnt int) {
	self.inner.staging.commit(cnt)
	if self.inner.staging.len() >= self.inner.chunkSize {
		self.inner.flush()
	}
}

// Reserve guarantees the next Writable view holds at least additional bytes,
// flushing and reallocating when the staged content would otherwise force a
// copy.
func (self *LooseBuffer) Reserve(additional int) {
	self.inner.reserve(additional)
}

// Flush freezes any staged bytes into a new complete chunk. Most callers
// never need this; it runs internally as the write cursor advances.
func (self *LooseBuffer) Flush() {
	self.inner.flush()
}

// PutBytes appends caller-owned bytes without copying them. Staged bytes are
// flushed first so read order is preserved. For small slices the refcount
// overhead can cost more than a plain Write.
func (self *LooseBuffer) PutBytes(data []byte) {
	if len(data) > 0 {
		self.inner.flush()
		self.inner.pushChunk(NewChunk(data))
	}
}

// PushChunk appends a chunk without copying, taking over the caller's
// reference. Empty chunks are dropped.
func (self *LooseBuffer) PushChunk(chunk *Chunk) {
	if chunk.Len() > 0 {
		self.inner.flush()
		self.inner.pushChunk(chunk)
	}
}

// Front returns the first unread contiguous slice: the oldest chunk, or the
// staged bytes when no chunks are queued. Gather is the better fit for
// vectored output.
func (self *LooseBuffer) Front() []byte {
	return self.inner.front()
}

// Gather fills dst with the unread slices in read order, chunks then staged
// bytes, and returns the count filled. The filled prefix is valid until the
// next mutation and suits a single vectored write.
func (self *LooseBuffer) Gather(dst [][]byte) int {
	return self.inner.gather(dst)
}

// Advance consumes cnt bytes from the front, dropping chunk references as
// they are passed. Advancing past Remaining panics.
func (self *LooseBuffer) Advance(cnt int) {
	self.inner.advance(cnt)
}

// Extract removes up to cnt unread bytes as one contiguous chunk, copying
// only when the bytes span more than one source.
func (self *LooseBuffer) Extract(cnt int) *Chunk {
	out, _ := self.inner.extract(cnt)
	return out
}

// TakeAll drains the buffer into one contiguous chunk.
func (self *LooseBuffer) TakeAll() *Chunk {
	return self.inner.takeAll()
}

// DrainChunks removes the complete chunks from the buffer and returns an
// iterator over them. Staged bytes stay behind.
func (self *LooseBuffer) DrainChunks() *DrainIter {
	return self.inner.drainChunks()
}

// IntoChunks consumes the buffer, folding a non-empty staging region in as
// the final chunk, and returns an iterator over everything. The buffer must
// not be used afterwards.
func (self *LooseBuffer) IntoChunks() *ChunkIter {
	return self.inner.intoChunks()
}

// Close releases any unread content, returning pooled storage, and shuts
// down the instrument instance. The buffer must not be used afterwards.
func (self *LooseBuffer) Close() {
	self.inner.close()
}

func (self *LooseBuffer) stagingCapacity() int {
	return self.inner.staging.capacity()
}

package chunkbuf

import "fmt"

const defaultChunkSize = 4096
const defaultChunkingCapacity = 16

// inner is the engine shared by both buffer variants: one staging region
// where incremental writes land, and a FIFO of frozen chunks. Unread bytes
// read in order: chunks front to back, then the staging region.
type inner struct {
	staging   *staging
	chunks    *chunkQueue
	chunkSize int
	pool      *Pool
	ii        InstrumentInstance
}

func newInner(profile *Profile, id string) *inner {
	if profile.ChunkSize < 1 {
		panic(fmt.Sprintf("invalid chunk size [%d]", profile.ChunkSize))
	}
	ii := profile.instrumentInstance(id)
	pool := NewPool(id, profile.ChunkSize, ii)
	return &inner{
		staging:   newStaging(pool),
		chunks:    newChunkQueue(profile.ChunkingCapacity),
		chunkSize: profile.ChunkSize,
		pool:      pool,
		ii:        ii,
	}
}

func (self *inner) isEmpty() bool {
	return self.chunks.isEmpty() && self.staging.isEmpty()
}

func (self *inner) remaining() int {
	sum := self.staging.len()
	for i := 0; i < self.chunks.size(); i++ {
		sum += self.chunks.at(i).Len()
	}
	return sum
}

// flush freezes any staged bytes into a new chunk at the tail of the queue,
// leaving the staging region empty.
func (self *inner) flush() {
	if !self.staging.isEmpty() {
		sz := self.staging.len()
		self.chunks.pushBack(self.staging.detach())
		self.ii.Flush(sz)
	}
}

// pushChunk appends a non-empty chunk behind any previously queued ones. The
// caller flushes staging first to preserve write order.
func (self *inner) pushChunk(chunk *Chunk) {
	self.chunks.pushBack(chunk)
	self.ii.PushChunk(chunk.Len())
}

// reserveStaging makes room to continue writing when the staging region is
// full, preferring to reuse the current allocation. Returns the capacity
// available from the read offset.
//
// The cutoff compares the allocation (measured from the read offset, grown
// by half) against the configured chunk size: past the cutoff the staged
// bytes would have to be copied into any renegotiated allocation anyway, so
// they are frozen into a chunk first and a fresh pool buffer takes over.
// Under the cutoff the consumed prefix is folded back in place.
func (self *inner) reserveStaging() int {
	capAvail := self.staging.capacity()
	if capAvail+capAvail/2 > self.chunkSize {
		self.flush()
	}
	self.staging.grow(self.chunkSize)
	return self.staging.capacity()
}

// reserve guarantees the next writable view holds at least additional bytes,
// applying the same cutoff heuristic as reserveStaging.
func (self *inner) reserve(additional int) {
	if additional < 0 {
		panic(fmt.Sprintf("invalid reservation [%d]", additional))
	}
	if self.staging.len() > maxInt-additional {
		panic(fmt.Sprintf("capacity overflow [%d + %d]", self.staging.len(), additional))
	}
	if self.staging.spare() >= additional {
		return
	}
	capAvail := self.staging.capacity()
	if capAvail+capAvail/2 > self.chunkSize {
		self.flush()
	}
	want := self.staging.len() + additional
	if want < self.chunkSize {
		want = self.chunkSize
	}
	self.staging.grow(want)
}

// front returns the first unread contiguous slice: the oldest queued chunk,
// or the staged bytes once no chunks remain.
func (self *inner) front() []byte {
	if front := self.chunks.front(); front != nil {
		return front.Bytes()
	}
	return self.staging.bytes()
}

// gather fills dst with the unread slices in read order, one per queued
// chunk and then one for a non-empty staging region, stopping when dst is
// full. Returns the number of slices filled.
func (self *inner) gather(dst [][]byte) int {
	n := 0
	for ; n < len(dst) && n < self.chunks.size(); n++ {
		dst[n] = self.chunks.at(n).Bytes()
	}
	if n < len(dst) && !self.staging.isEmpty() {
		dst[n] = self.staging.bytes()
		n++
	}
	self.ii.Gather(n)
	return n
}

// advance consumes cnt bytes from the front, releasing fully consumed chunks
// and trimming a partially consumed one. Once no chunks remain the remainder
// advances the staging read offset; stagingAdv reports that remainder (and
// inStaging that it happened) for the strict variant's capacity accounting.
func (self *inner) advance(cnt int) (stagingAdv int, inStaging bool) {
	self.ii.Advance(cnt)
	for {
		front := self.chunks.front()
		if front == nil {
			self.staging.advance(cnt)
			return cnt, true
		}
		if cnt < front.Len() {
			front.advance(cnt)
			return 0, false
		}
		cnt -= front.Len()
		self.chunks.popFront().Release()
	}
}

// extract removes up to cnt unread bytes as one contiguous chunk. A single
// source (the front chunk, or the staging region when no chunks are queued)
// is sliced out without copying; bytes are copied only when they span more
// than one source. stagingAdv reports the bytes consumed from the staging
// region for the strict variant's capacity accounting.
func (self *inner) extract(cnt int) (out *Chunk, stagingAdv int) {
	if self.chunks.isEmpty() {
		n := cnt
		if staged := self.staging.len(); n > staged {
			n = staged
		}
		self.ii.Extract(n)
		return self.staging.sliceOut(n), n
	}
	toCopy := cnt
	if rem := self.remaining(); toCopy > rem {
		toCopy = rem
	}
	self.ii.Extract(toCopy)
	if front := self.chunks.front(); front.Len() >= toCopy {
		if front.Len() == toCopy {
			return self.chunks.popFront(), 0
		}
		out := front.Slice(0, toCopy)
		front.advance(toCopy)
		return out, 0
	}
	buf := self.pool.GetSized(toCopy)
	pos := 0
	for pos < toCopy {
		if front := self.chunks.front(); front != nil {
			n := copy(buf.Data[pos:toCopy], front.Bytes())
			pos += n
			if n == front.Len() {
				self.chunks.popFront().Release()
			} else {
				front.advance(n)
			}
		} else {
			n := copy(buf.Data[pos:toCopy], self.staging.bytes())
			self.staging.advance(n)
			stagingAdv += n
			pos += n
		}
	}
	return &Chunk{data: buf.Data[:toCopy], buf: buf}, stagingAdv
}

// takeAll drains the buffer into one contiguous chunk, copying only when the
// content spans more than one source.
func (self *inner) takeAll() *Chunk {
	if self.chunks.isEmpty() {
		self.ii.Extract(self.staging.len())
		return self.staging.detach()
	}
	if self.chunks.size() == 1 && self.staging.isEmpty() {
		front := self.chunks.popFront()
		self.ii.Extract(front.Len())
		return front
	}
	out, _ := self.extract(self.remaining())
	return out
}

// close releases unread content, returning pooled storage, and shuts down
// the instrument instance.
func (self *inner) close() {
	for {
		front := self.chunks.popFront()
		if front == nil {
			break
		}
		front.Release()
	}
	self.staging.release()
	self.ii.Shutdown()
}

func (self *inner) drainChunks() *DrainIter {
	return &DrainIter{chunks: self.chunks.drain()}
}

func (self *inner) intoChunks() *ChunkIter {
	if !self.staging.isEmpty() {
		self.flush()
	}
	return &ChunkIter{chunks: self.chunks.drain()}
}

const maxInt = int(^uint(0) >> 1)

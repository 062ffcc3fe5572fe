package chunkbuf

import "fmt"

// staging is the single mutable region where incremental writes land. It
// wraps one pooled allocation with a read offset and a write cursor
// (0 <= rd <= wr <= len(buf.Data)); buf.Data[rd:wr] holds the staged bytes.
//
// When an extract slices a chunk out of the staged prefix zero-copy, the
// allocation becomes aliased and the region may no longer compact or reset
// its cursors until the allocation is swapped for a fresh one.
type staging struct {
	buf    *Buffer
	rd     int
	wr     int
	shared bool
	pool   *Pool
}

func newStaging(pool *Pool) *staging {
	return &staging{pool: pool}
}

func (self *staging) len() int {
	return self.wr - self.rd
}

func (self *staging) isEmpty() bool {
	return self.wr == self.rd
}

// capacity is the allocation size measured from the read offset, the analog
// of a growable array's capacity after its consumed prefix.
func (self *staging) capacity() int {
	if self.buf == nil {
		return 0
	}
	return len(self.buf.Data) - self.rd
}

// spare is the writable tail of the allocation.
func (self *staging) spare() int {
	if self.buf == nil {
		return 0
	}
	return len(self.buf.Data) - self.wr
}

func (self *staging) bytes() []byte {
	if self.buf == nil {
		return nil
	}
	return self.buf.Data[self.rd:self.wr]
}

func (self *staging) writable() []byte {
	if self.buf == nil {
		return nil
	}
	return self.buf.Data[self.wr:]
}

func (self *staging) commit(cnt int) {
	if cnt < 0 || cnt > self.spare() {
		panic(fmt.Sprintf("commit [%d] exceeds writable [%d]", cnt, self.spare()))
	}
	self.wr += cnt
}

func (self *staging) advance(cnt int) {
	if cnt > self.len() {
		panic(fmt.Sprintf("advance [%d] exceeds staged [%d]", cnt, self.len()))
	}
	self.rd += cnt
}

// detach freezes the staged bytes into a Chunk, handing this region's hold on
// the allocation over to the Chunk, and leaves the region unallocated.
func (self *staging) detach() *Chunk {
	out := &Chunk{data: self.bytes(), buf: self.buf}
	self.buf = nil
	self.rd, self.wr, self.shared = 0, 0, false
	return out
}

// sliceOut removes the first cnt staged bytes as a Chunk sharing the
// allocation. The consumed prefix stays aliased by the Chunk, so the region
// is marked shared until the allocation is swapped.
func (self *staging) sliceOut(cnt int) *Chunk {
	if cnt > self.len() {
		panic(fmt.Sprintf("sliceOut [%d] exceeds staged [%d]", cnt, self.len()))
	}
	if cnt == 0 {
		return NewChunk(nil)
	}
	out := &Chunk{data: self.buf.Data[self.rd : self.rd+cnt], buf: self.buf}
	out.Ref()
	self.rd += cnt
	self.shared = true
	return out
}

// compact folds the consumed prefix back into the allocation, copying the
// staged bytes to the front. Never called on a shared allocation.
func (self *staging) compact() {
	if self.shared {
		panic("compact on shared allocation")
	}
	copy(self.buf.Data, self.buf.Data[self.rd:self.wr])
	self.wr -= self.rd
	self.rd = 0
}

// grow makes the region's full allocation at least want bytes, preserving
// staged content. The current allocation is reused via compaction when it is
// big enough and unshared; otherwise the staged bytes move to a fresh
// allocation and the old one is released.
func (self *staging) grow(want int) {
	if self.buf == nil {
		self.buf = self.pool.GetSized(want)
		return
	}
	if len(self.buf.Data) >= want && !self.shared {
		if self.rd > 0 {
			self.compact()
		}
		return
	}
	next := self.pool.GetSized(want)
	wr := copy(next.Data, self.bytes())
	self.buf.Unref()
	self.buf = next
	self.rd, self.wr, self.shared = 0, wr, false
}

// release drops the region's hold on its allocation.
func (self *staging) release() {
	if self.buf != nil {
		self.buf.Unref()
		self.buf = nil
	}
	self.rd, self.wr, self.shared = 0, 0, false
}

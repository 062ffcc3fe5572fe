package chunkbuf

// Chunk is an immutable view over a byte range. Chunks backed by pooled
// storage carry a reference on their Buffer; the storage is recycled when the
// last holder releases it. A Chunk wrapped around caller-owned bytes has no
// backing Buffer and costs nothing to release.
//
// A Chunk is never mutated after creation. The queue trims the front of its
// view when a read advances into it, which narrows the view without touching
// the underlying bytes.
type Chunk struct {
	data []byte
	buf  *Buffer
}

// NewChunk wraps caller-owned bytes without copying them. The caller must not
// mutate data while the Chunk (or any Slice of it) is live.
func NewChunk(data []byte) *Chunk {
	return &Chunk{data: data}
}

func (self *Chunk) Len() int {
	return len(self.data)
}

func (self *Chunk) Bytes() []byte {
	return self.data
}

// Ref takes an additional hold on the backing storage, for handing the Chunk
// to another holder.
func (self *Chunk) Ref() {
	if self.buf != nil {
		self.buf.Ref()
	}
}

// Release drops this holder's reference. Pooled storage returns to its pool
// when the last holder releases.
func (self *Chunk) Release() {
	if self.buf != nil {
		self.buf.Unref()
	}
}

// Slice returns a sub-range view sharing the backing storage, with its own
// reference.
func (self *Chunk) Slice(from, to int) *Chunk {
	out := &Chunk{data: self.data[from:to], buf: self.buf}
	out.Ref()
	return out
}

// advance trims cnt bytes from the front of the view.
func (self *Chunk) advance(cnt int) {
	self.data = self.data[cnt:]
}

package chunkbuf

// DrainIter yields complete chunks removed from a buffer, oldest first. The
// chunks are removed from the buffer eagerly when the iterator is created,
// whether or not the caller walks it to the end; staged bytes are not
// included. Each yielded chunk is owned by the caller, who releases it.
// Close releases whatever the caller did not take.
type DrainIter struct {
	chunks []*Chunk
	pos    int
}

func (self *DrainIter) Size() int {
	return len(self.chunks) - self.pos
}

func (self *DrainIter) Next() (*Chunk, bool) {
	if self.pos >= len(self.chunks) {
		return nil, false
	}
	chunk := self.chunks[self.pos]
	self.chunks[self.pos] = nil
	self.pos++
	return chunk, true
}

func (self *DrainIter) Close() {
	for {
		chunk, ok := self.Next()
		if !ok {
			return
		}
		chunk.Release()
	}
}

// ChunkIter yields every chunk of a consumed buffer, oldest first. A
// non-empty staging region is folded in as the final chunk before iteration
// begins, so only whole chunks are ever yielded. Ownership semantics match
// DrainIter.
type ChunkIter struct {
	chunks []*Chunk
	pos    int
}

func (self *ChunkIter) Size() int {
	return len(self.chunks) - self.pos
}

func (self *ChunkIter) Next() (*Chunk, bool) {
	if self.pos >= len(self.chunks) {
		return nil, false
	}
	chunk := self.chunks[self.pos]
	self.chunks[self.pos] = nil
	self.pos++
	return chunk, true
}

func (self *ChunkIter) Close() {
	for {
		chunk, ok := self.Next()
		if !ok {
			return
		}
		chunk.Release()
	}
}

package chunkbuf

// chunkQueue is a FIFO of complete chunks. Insertion order is write order is
// read order. An empty chunk is never queued.
type chunkQueue struct {
	chunks []*Chunk
}

func newChunkQueue(capacity int) *chunkQueue {
	return &chunkQueue{chunks: make([]*Chunk, 0, capacity)}
}

func (self *chunkQueue) size() int {
	return len(self.chunks)
}

func (self *chunkQueue) isEmpty() bool {
	return len(self.chunks) == 0
}

func (self *chunkQueue) at(i int) *Chunk {
	return self.chunks[i]
}

func (self *chunkQueue) front() *Chunk {
	if len(self.chunks) < 1 {
		return nil
	}
	return self.chunks[0]
}

func (self *chunkQueue) pushBack(chunk *Chunk) {
	if chunk.Len() < 1 {
		panic("empty chunk queued")
	}
	self.chunks = append(self.chunks, chunk)
}

func (self *chunkQueue) popFront() *Chunk {
	if len(self.chunks) < 1 {
		return nil
	}
	front := self.chunks[0]
	self.chunks[0] = nil
	self.chunks = self.chunks[1:]
	return front
}

// drain removes and returns all queued chunks, leaving the queue empty but
// with its storage intact.
func (self *chunkQueue) drain() []*Chunk {
	out := self.chunks
	self.chunks = self.chunks[len(self.chunks):]
	return out
}

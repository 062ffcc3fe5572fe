package chunkbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkWrapsWithoutCopy(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	chunk := NewChunk(data)
	assert.Equal(t, 5, chunk.Len())
	assert.Same(t, &data[0], &chunk.Bytes()[0])
	chunk.Release()
}

func TestChunkSliceSharesBacking(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	chunk := NewChunk(data)
	slice := chunk.Slice(1, 4)
	assert.Equal(t, []byte{2, 3, 4}, slice.Bytes())
	assert.Same(t, &data[1], &slice.Bytes()[0])
	slice.Release()
	chunk.Release()
}

func TestChunkAdvanceNarrowsView(t *testing.T) {
	chunk := NewChunk([]byte{1, 2, 3, 4})
	chunk.advance(3)
	assert.Equal(t, 1, chunk.Len())
	assert.Equal(t, []byte{4}, chunk.Bytes())
}

func TestPooledChunkReleaseRecycles(t *testing.T) {
	pool := NewPool("test", 8, nil)
	buf := pool.Get()
	copy(buf.Data, []byte{9, 9, 9})

	chunk := &Chunk{data: buf.Data[:3], buf: buf}
	slice := chunk.Slice(1, 3)
	chunk.Release()
	assert.Equal(t, []byte{9, 9}, slice.Bytes())
	slice.Release()
}

package chunkbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainChunksLeavesStaging(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	iter := buf.DrainChunks()
	assert.Equal(t, 2, iter.Size())
	first, _ := iter.Next()
	assert.Equal(t, []byte{1, 2, 3, 4}, first.Bytes())
	first.Release()
	second, _ := iter.Next()
	assert.Equal(t, []byte{5, 6, 7, 8}, second.Bytes())
	second.Release()
	_, ok := iter.Next()
	assert.False(t, ok)

	assert.Equal(t, 2, buf.Remaining())
	assert.Equal(t, []byte{9, 10}, buf.Front())
}

// The chunks leave the buffer when the iterator is created, not as it is
// walked; a second drain has nothing to yield.
func TestDrainChunksIsEager(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	first := buf.DrainChunks()
	assert.Equal(t, 2, first.Size())

	second := buf.DrainChunks()
	assert.Equal(t, 0, second.Size())
	assert.True(t, buf.IsEmpty())

	first.Close()
}

func TestIntoChunksFoldsStaging(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	iter := buf.IntoChunks()
	assert.Equal(t, 3, iter.Size())

	var total []byte
	for {
		chunk, ok := iter.Next()
		if !ok {
			break
		}
		total = append(total, chunk.Bytes()...)
		chunk.Release()
	}
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, total)
}

func TestIntoChunksEmptyStaging(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4})

	iter := buf.IntoChunks()
	assert.Equal(t, 1, iter.Size())
	iter.Close()
}

func TestStrictIntoChunksHonorsLimit(t *testing.T) {
	buf := NewStrictBufferWithChunkSize(4)
	view := buf.Writable()
	copy(view, []byte{1, 2, 3})
	buf.Commit(3)

	iter := buf.IntoChunks()
	assert.Equal(t, 1, iter.Size())
	chunk, _ := iter.Next()
	assert.Equal(t, []byte{1, 2, 3}, chunk.Bytes())
	chunk.Release()
}

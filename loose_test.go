package chunkbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooseFlushAtChunkSize(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)

	view := buf.Writable()
	assert.Equal(t, 8, len(view))
	for i := 0; i < 8; i++ {
		view[i] = byte(i)
	}
	buf.Commit(8)
	assert.Equal(t, 8, buf.Remaining())

	iter := buf.DrainChunks()
	assert.Equal(t, 1, iter.Size())
	chunk, ok := iter.Next()
	assert.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, chunk.Bytes())
	chunk.Release()
	assert.True(t, buf.IsEmpty())
}

// A partially consumed staging region past the reallocation cutoff is frozen
// into a chunk when the next view is negotiated.
func TestLooseRenegotiationFlushes(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)

	n, err := buf.Write([]byte{1, 2, 3, 4})
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	buf.Advance(2)
	n, err = buf.Write([]byte{5, 6, 7, 8})
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 6, buf.Remaining())

	view := buf.Writable()
	assert.Equal(t, 8, len(view))

	iter := buf.DrainChunks()
	assert.Equal(t, 1, iter.Size())
	chunk, _ := iter.Next()
	assert.Equal(t, []byte{3, 4, 5, 6, 7, 8}, chunk.Bytes())
	chunk.Release()
}

// A mostly consumed staging region under the cutoff is compacted in place;
// nothing is flushed and the allocation is reused.
func TestLooseCapacityReuse(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)

	_, _ = buf.Write([]byte{1, 2, 3})
	buf.Advance(3)
	_, _ = buf.Write([]byte{4, 5, 6, 7, 8})

	view := buf.Writable()
	assert.Equal(t, 3, len(view))

	iter := buf.DrainChunks()
	assert.Equal(t, 0, iter.Size())
	iter.Close()
	assert.Equal(t, 5, buf.Remaining())

	chunk := buf.TakeAll()
	assert.Equal(t, []byte{4, 5, 6, 7, 8}, chunk.Bytes())
	chunk.Release()
}

func TestLoosePutBytesZeroCopy(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(100)

	src := make([]byte, 10000)
	for i := range src {
		src[i] = byte(i)
	}
	buf.PutBytes(src)
	assert.Equal(t, 10000, buf.Remaining())

	iter := buf.DrainChunks()
	assert.Equal(t, 1, iter.Size())
	chunk, _ := iter.Next()
	assert.Equal(t, 10000, chunk.Len())
	assert.Same(t, &src[0], &chunk.Bytes()[0])
	chunk.Release()
}

func TestLoosePutBytesOrdersAfterStaged(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(16)

	_, _ = buf.Write([]byte{1, 2, 3})
	buf.PutBytes([]byte{4, 5, 6})

	iter := buf.DrainChunks()
	assert.Equal(t, 2, iter.Size())
	first, _ := iter.Next()
	assert.Equal(t, []byte{1, 2, 3}, first.Bytes())
	first.Release()
	second, _ := iter.Next()
	assert.Equal(t, []byte{4, 5, 6}, second.Bytes())
	second.Release()
}

func TestLooseReserve(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)
	buf.Reserve(100)
	view := buf.Writable()
	assert.True(t, len(view) >= 100)
	assert.Equal(t, 0, buf.Remaining())
}

func TestLooseExtractFromStaging(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(16)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6})

	chunk := buf.Extract(4)
	assert.Equal(t, []byte{1, 2, 3, 4}, chunk.Bytes())
	assert.Equal(t, 2, buf.Remaining())
	chunk.Release()

	rest := buf.TakeAll()
	assert.Equal(t, []byte{5, 6}, rest.Bytes())
	rest.Release()
}

func TestLooseExtractSpansSources(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, _ = buf.Write([]byte{9, 10})

	chunk := buf.Extract(6)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, chunk.Bytes())
	assert.Equal(t, 4, buf.Remaining())
	chunk.Release()

	rest := buf.TakeAll()
	assert.Equal(t, []byte{7, 8, 9, 10}, rest.Bytes())
	rest.Release()
}

func TestLooseExtractFrontChunkExactly(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(16)
	src := []byte{1, 2, 3, 4}
	buf.PutBytes(src)

	chunk := buf.Extract(4)
	assert.Same(t, &src[0], &chunk.Bytes()[0])
	assert.True(t, buf.IsEmpty())
	chunk.Release()
}

func TestLooseTakeAllSingleChunkZeroCopy(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(16)
	src := []byte{1, 2, 3, 4, 5}
	buf.PutBytes(src)

	chunk := buf.TakeAll()
	assert.Same(t, &src[0], &chunk.Bytes()[0])
	assert.True(t, buf.IsEmpty())
	chunk.Release()
}

func TestLooseAdvanceAcrossChunks(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	buf.Advance(5)
	assert.Equal(t, 5, buf.Remaining())
	assert.Equal(t, []byte{6, 7, 8}, buf.Front())

	buf.Advance(5)
	assert.True(t, buf.IsEmpty())
}

func TestLooseGather(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, _ = buf.Write([]byte{9, 10})

	dst := make([][]byte, 8)
	n := buf.Gather(dst)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, dst[0])
	assert.Equal(t, []byte{5, 6, 7, 8}, dst[1])
	assert.Equal(t, []byte{9, 10}, dst[2])
}

func TestLooseGatherTruncates(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(4)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	dst := make([][]byte, 1)
	n := buf.Gather(dst)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, dst[0])
}

func TestLooseCommitPastViewPanics(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)
	view := buf.Writable()
	assert.Panics(t, func() { buf.Commit(len(view) + 1) })
}

func TestLooseAdvancePastRemainingPanics(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)
	_, _ = buf.Write([]byte{1, 2, 3})
	assert.Panics(t, func() { buf.Advance(4) })
}

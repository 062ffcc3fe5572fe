package chunkbuf

import (
	"bytes"
	"io"
	"io/ioutil"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooseWriteReadRoundTrip(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(16)

	src := make([]byte, 100*1024)
	rand.Seed(42)
	for i := range src {
		src[i] = byte(rand.Intn(255))
	}
	n, err := buf.Write(src)
	assert.NoError(t, err)
	assert.Equal(t, len(src), n)
	assert.Equal(t, len(src), buf.Remaining())

	out, err := ioutil.ReadAll(buf)
	assert.NoError(t, err)
	assert.Equal(t, src, out)
	assert.True(t, buf.IsEmpty())
}

func TestStrictWriteReadRoundTrip(t *testing.T) {
	buf := NewStrictBufferWithChunkSize(16)

	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(i)
	}
	n, err := buf.Write(src)
	assert.NoError(t, err)
	assert.Equal(t, len(src), n)

	out, err := ioutil.ReadAll(buf)
	assert.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestReadEmpty(t *testing.T) {
	buf := NewLooseBuffer()
	p := make([]byte, 16)
	n, err := buf.Read(p)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	n, err = buf.Read(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
}

func TestWriteString(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)
	n, err := buf.WriteString("hello, world")
	assert.NoError(t, err)
	assert.Equal(t, 12, n)

	chunk := buf.TakeAll()
	assert.Equal(t, "hello, world", string(chunk.Bytes()))
	chunk.Release()
}

func TestLooseWriteTo(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(8)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	buf.PutBytes([]byte{11, 12, 13})

	out := new(bytes.Buffer)
	n, err := buf.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(13), n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, out.Bytes())
	assert.True(t, buf.IsEmpty())
}

func TestStrictWriteToKeepsCeilingConsistent(t *testing.T) {
	buf := NewStrictBufferWithChunkSize(8)
	_, _ = buf.Write([]byte{1, 2, 3, 4, 5})

	out := new(bytes.Buffer)
	n, err := buf.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.True(t, buf.IsEmpty())

	// the drained buffer accepts further writes
	_, _ = buf.Write([]byte{6, 7, 8})
	chunk := buf.TakeAll()
	assert.Equal(t, []byte{6, 7, 8}, chunk.Bytes())
	chunk.Release()
}

// Gathers wider than one batch drain over multiple vectored writes.
func TestWriteToManyChunks(t *testing.T) {
	buf := NewLooseBufferWithChunkSize(1)

	src := make([]byte, 2*gatherLimit+7)
	for i := range src {
		src[i] = byte(i)
	}
	for i := range src {
		buf.PutBytes(src[i : i+1])
	}

	out := new(bytes.Buffer)
	n, err := buf.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, src, out.Bytes())
	assert.True(t, buf.IsEmpty())
}

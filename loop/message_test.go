package loop

import (
	"bytes"
	"crypto/sha512"
	"io"
	"testing"

	"github.com/openziti/chunkbuf"
	"github.com/stretchr/testify/assert"
)

func TestStageDecodeHeader(t *testing.T) {
	txb := chunkbuf.NewLooseBuffer()
	inH := &header{33, START, 1024*1024 + 68}
	err := stageHeader(inH, txb)
	assert.NoError(t, err)
	assert.Equal(t, headerSz, txb.Remaining())

	wire := new(bytes.Buffer)
	n, err := txb.WriteTo(wire)
	assert.NoError(t, err)
	assert.Equal(t, int64(headerSz), n)

	outH, err := decodeHeader(wire.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, inH.seq, outH.seq)
	assert.Equal(t, inH.mt, outH.mt)
	assert.Equal(t, inH.sz, outH.sz)
}

func TestReadHeaderMulti(t *testing.T) {
	txb := chunkbuf.NewLooseBuffer()
	inH0 := &header{0, START, 0}
	inH1 := &header{1, DATA, 4096}
	assert.NoError(t, stageHeader(inH0, txb))
	assert.NoError(t, stageHeader(inH1, txb))

	wire := new(bytes.Buffer)
	_, err := txb.WriteTo(wire)
	assert.NoError(t, err)
	assert.Equal(t, 2*headerSz, wire.Len())

	pool := chunkbuf.NewPool("test", headerSz, nil)
	outH0, err := readHeader(wire, pool)
	assert.NoError(t, err)
	assert.Equal(t, inH0.seq, outH0.seq)
	assert.Equal(t, inH0.mt, outH0.mt)

	outH1, err := readHeader(wire, pool)
	assert.NoError(t, err)
	assert.Equal(t, inH1.seq, outH1.seq)
	assert.Equal(t, inH1.mt, outH1.mt)
	assert.Equal(t, inH1.sz, outH1.sz)
}

func TestDecodeBadMagick(t *testing.T) {
	data := make([]byte, headerSz)
	_, err := decodeHeader(data)
	assert.Error(t, err)
}

func TestFrameRoundTrip(t *testing.T) {
	ds, err := NewDataSet(16 * 1024)
	assert.NoError(t, err)

	txb := chunkbuf.NewLooseBuffer()
	inH := &header{7, DATA, int64(ds.block.Len())}
	assert.NoError(t, stageHeader(inH, txb))
	txb.PushChunk(ds.block.Slice(0, ds.block.Len()))

	wire := new(bytes.Buffer)
	n, err := txb.WriteTo(wire)
	assert.NoError(t, err)
	assert.Equal(t, int64(headerSz+ds.block.Len()), n)
	assert.True(t, txb.IsEmpty())

	pool := chunkbuf.NewPool("test", headerSz, nil)
	outH, err := readHeader(wire, pool)
	assert.NoError(t, err)
	assert.Equal(t, inH.sz, outH.sz)

	payload := make([]byte, outH.sz)
	_, err = io.ReadFull(wire, payload)
	assert.NoError(t, err)

	inHash, data, err := decodeDataBlock(payload)
	assert.NoError(t, err)
	outHash := sha512.Sum512(data)
	assert.EqualValues(t, outHash[:], inHash)
}

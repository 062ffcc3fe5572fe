package loop

import (
	"crypto/sha512"
	"testing"

	"github.com/openziti/chunkbuf/util"
	"github.com/stretchr/testify/assert"
)

func TestDataBlockEncodeDecode(t *testing.T) {
	ds, err := NewDataSet(1024 * 1024)
	assert.NoError(t, err)
	assert.Equal(t, dataHeaderSz+1024*1024, ds.BlockSize())

	raw := ds.block.Bytes()
	assert.Equal(t, sha512Sz, int(util.ReadUint16(raw[:hashSizeSz])))

	hash, data, err := decodeDataBlock(raw)
	assert.NoError(t, err)
	assert.Equal(t, 1024*1024, len(data))

	check := sha512.Sum512(data)
	assert.EqualValues(t, check[:], hash)
}

func TestDataBlockDecodeShort(t *testing.T) {
	_, _, err := decodeDataBlock([]byte{0x00})
	assert.Error(t, err)
}

func TestInvalidDataSetSize(t *testing.T) {
	_, err := NewDataSet(0)
	assert.Error(t, err)
}

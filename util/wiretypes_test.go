package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteUint32(t *testing.T) {
	valueOut := uint32(math.MaxUint32)
	buf := make([]byte, 4)
	WriteUint32(buf, valueOut)
	valueIn := ReadUint32(buf)
	assert.Equal(t, valueOut, valueIn)

	valueOut = 16
	buf = make([]byte, 4)
	WriteUint32(buf, valueOut)
	valueIn = ReadUint32(buf)
	assert.Equal(t, valueOut, valueIn)
}

func TestReadWriteInt64(t *testing.T) {
	for _, valueOut := range []int64{0, 1, math.MaxInt64, math.MinInt64, 1024*1024 + 66} {
		buf := make([]byte, 8)
		WriteInt64(buf, valueOut)
		valueIn := ReadInt64(buf)
		assert.Equal(t, valueOut, valueIn)
	}
}

func TestReadWriteUint16(t *testing.T) {
	valueOut := uint16(math.MaxUint16)
	buf := make([]byte, 2)
	WriteUint16(buf, valueOut)
	assert.Equal(t, valueOut, ReadUint16(buf))
}

package loop

import (
	"crypto/sha512"
	"math/rand"
	"time"

	"github.com/openziti/chunkbuf"
	"github.com/openziti/chunkbuf/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DataSet is a verifiable payload block: a random body prefixed by its
// sha512 digest. The block lives in a single immutable chunk, so every send
// shares the same storage.
type DataSet struct {
	block *chunkbuf.Chunk
}

func NewDataSet(sz int64) (*DataSet, error) {
	if sz < 1 {
		return nil, errors.Errorf("invalid data set size [%d]", sz)
	}

	data := make([]byte, dataHeaderSz+sz)
	rand.Seed(time.Now().UnixNano())

	start := time.Now()
	for i := dataHeaderSz; i < len(data); i++ {
		data[i] = byte(rand.Intn(255))
		if time.Since(start).Milliseconds() > 5000 {
			logrus.Infof("generating random payload (%0.2f%%)", (float32(i)/float32(len(data)))*100.0)
			start = time.Now()
		}
	}

	hash := sha512.Sum512(data[dataHeaderSz:])
	util.WriteUint16(data[0:hashSizeSz], sha512Sz)
	copy(data[hashSizeSz:dataHeaderSz], hash[:])

	return &DataSet{block: chunkbuf.NewChunk(data)}, nil
}

func (self *DataSet) BlockSize() int {
	return self.block.Len()
}

func decodeDataBlock(data []byte) ([]byte, []byte, error) {
	if len(data) < hashSizeSz+1 {
		return nil, nil, errors.Errorf("block too small [%d]", len(data))
	}
	hashSz := int(util.ReadUint16(data[0:hashSizeSz]))
	if len(data) < hashSizeSz+hashSz {
		return nil, nil, errors.Errorf("block too small [%d current, at least %d required]", len(data), hashSizeSz+hashSz)
	}
	return data[hashSizeSz : hashSizeSz+hashSz], data[hashSizeSz+hashSz:], nil
}

const hashSizeSz = 2
const sha512Sz = 64
const dataHeaderSz = hashSizeSz + sha512Sz

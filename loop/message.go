package loop

import (
	"io"

	"github.com/openziti/chunkbuf"
	"github.com/openziti/chunkbuf/util"
	"github.com/pkg/errors"
)

type header struct {
	seq uint32
	mt  messageType
	sz  int64
}

// stageHeader encodes h into the staging region of txb, where it coalesces
// ahead of whatever payload follows it.
func stageHeader(h *header, txb *chunkbuf.LooseBuffer) error {
	txb.Reserve(headerSz)
	w := util.NewByteWriter(txb.Writable()[:headerSz])
	if _, err := w.Write(magick[:]); err != nil {
		return err
	}
	var scratch [8]byte
	util.WriteUint32(scratch[:4], h.seq)
	if _, err := w.Write(scratch[:4]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(h.mt)}); err != nil {
		return err
	}
	util.WriteInt64(scratch[:8], h.sz)
	if _, err := w.Write(scratch[:8]); err != nil {
		return err
	}
	txb.Commit(w.Len())
	return nil
}

func decodeHeader(data []byte) (*header, error) {
	if len(data) < headerSz {
		return nil, errors.Errorf("short buffer [%d < %d]", len(data), headerSz)
	}
	for i := 0; i < len(magick); i++ {
		if data[i] != magick[i] {
			return nil, errors.Errorf("invalid magick")
		}
	}
	h := &header{
		seq: util.ReadUint32(data[4:8]),
		mt:  messageType(data[8]),
		sz:  util.ReadInt64(data[9:17]),
	}
	return h, nil
}

func readHeader(r io.Reader, pool *chunkbuf.Pool) (*header, error) {
	buf := pool.Get()
	defer buf.Unref()

	n, err := io.ReadFull(r, buf.Data[:headerSz])
	if n != headerSz {
		return nil, errors.Errorf("weird read [%d != %d]", n, headerSz)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading header")
	}
	h, err := decodeHeader(buf.Data[:headerSz])
	if err != nil {
		return nil, errors.Wrap(err, "error decoding header")
	}
	return h, nil
}

type messageType uint8

const (
	START messageType = iota
	DATA
	END
)

var magick = [4]byte{0xC8, 0xBF, 0x00, 0x01}

const headerSz = 17

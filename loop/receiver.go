package loop

import (
	"crypto/sha512"
	"net"
	"time"

	"github.com/openziti/chunkbuf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Receiver reads framed blocks from the peer, accumulating each payload in
// a receive buffer whose chunk size tracks the block size, so a complete
// block drains out as a single contiguous chunk for verification.
type Receiver struct {
	profile    *chunkbuf.Profile
	headerPool *chunkbuf.Pool
	conn       net.Conn
	rxb        *chunkbuf.LooseBuffer
	blocks     chan *chunkbuf.Chunk
	blocksDone chan struct{}
	metrics    *Metrics
	rate       *transferReporter
	Done       chan struct{}
}

func NewReceiver(profile *chunkbuf.Profile, metrics *Metrics, conn net.Conn) *Receiver {
	if profile == nil {
		profile = chunkbuf.NewBaselineProfile()
	}
	return &Receiver{
		profile:    profile,
		headerPool: chunkbuf.NewPool("loop_rx", headerSz, nil),
		conn:       conn,
		blocks:     make(chan *chunkbuf.Chunk, 4096),
		blocksDone: make(chan struct{}),
		metrics:    metrics,
		rate:       newTransferReporter("rx"),
		Done:       make(chan struct{}),
	}
}

func (self *Receiver) Run(hasher bool) {
	logrus.Info("starting")
	defer logrus.Info("exiting")
	defer func() {
		if self.rxb != nil {
			self.rxb.Close()
		}
	}()

	go self.rate.run()

	if hasher {
		go self.hasher()
		defer func() {
			logrus.Infof("closing hasher")
			close(self.blocks)
			<-self.blocksDone
			close(self.Done)
		}()
	} else {
		defer close(self.Done)
	}

	if err := self.receiveStart(); err != nil {
		logrus.Errorf("error receiving start (%v)", err)
		return
	}
	if err := self.receiveData(hasher); err != nil {
		logrus.Errorf("error receiving data (%v)", err)
		return
	}

	close(self.rate.in)
}

func (self *Receiver) receiveStart() error {
	h, err := readHeader(self.conn, self.headerPool)
	if err != nil {
		return err
	}
	if h.mt != START {
		return errors.Errorf("expected start message")
	}
	if h.sz != 0 {
		return errors.Errorf("non-empty start message")
	}
	return nil
}

func (self *Receiver) receiveData(hasher bool) error {
	for {
		h, err := readHeader(self.conn, self.headerPool)
		if err != nil {
			return err
		}
		if h.mt == DATA {
			if h.sz < 1 {
				return errors.Errorf("invalid data block size [%d]", h.sz)
			}
			if self.rxb == nil {
				rxProfile := *self.profile
				rxProfile.ChunkSize = int(h.sz)
				self.rxb = chunkbuf.NewLooseBufferWithProfile(&rxProfile)
			}

			remaining := int(h.sz)
			for remaining > 0 {
				view := self.rxb.Writable()
				if len(view) > remaining {
					view = view[:remaining]
				}
				n, err := self.conn.Read(view)
				if err != nil {
					return err
				}
				self.rxb.Commit(n)
				remaining -= n
			}

			block := self.rxb.TakeAll()
			self.metrics.Rx(h.sz)
			self.rate.in <- &transferReport{time.Now(), h.sz}

			if hasher {
				self.blocks <- block
			} else {
				block.Release()
			}

		} else if h.mt == END {
			if h.sz != 0 {
				return errors.Errorf("non-empty end message")
			}
			return nil

		} else {
			return errors.Errorf("unexpected message type (%d)", h.mt)
		}
	}
}

func (self *Receiver) hasher() {
	logrus.Infof("started")
	defer logrus.Infof("exited")
	defer func() { close(self.blocksDone) }()

	for {
		block, ok := <-self.blocks
		if !ok {
			return
		}

		inHash, data, err := decodeDataBlock(block.Bytes())
		if err != nil {
			logrus.Errorf("error decoding data block (%v)", err)
			block.Release()
			continue
		}

		outHash := sha512.Sum512(data)
		if len(outHash) != len(inHash) {
			logrus.Errorf("hash length mismatch [%d != %d]", len(outHash), len(inHash))
		}
		for i := 0; i < len(outHash); i++ {
			if outHash[i] != inHash[i] {
				logrus.Errorf("hash mismatch at [#%d]", i)
				return
			}
		}

		block.Release()
	}
}

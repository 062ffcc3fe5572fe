package loop

import (
	"net"
	"time"

	"github.com/openziti/chunkbuf"
	"github.com/openziti/chunkbuf/util"
	"github.com/sirupsen/logrus"
)

// Sender streams the data set at the peer ct times. Each message is framed
// in the output buffer: the header lands in the staging region, the payload
// block is queued behind it without copying, and the whole frame leaves in
// one vectored write.
type Sender struct {
	ds      *DataSet
	conn    net.Conn
	txb     *chunkbuf.LooseBuffer
	seq     util.Sequence
	ct      int
	metrics *Metrics
	rate    *transferReporter
	Done    chan struct{}
}

func NewSender(profile *chunkbuf.Profile, ds *DataSet, metrics *Metrics, conn net.Conn, ct int) *Sender {
	if profile == nil {
		profile = chunkbuf.NewBaselineProfile()
	}
	return &Sender{
		ds:      ds,
		conn:    conn,
		txb:     chunkbuf.NewLooseBufferWithProfile(profile),
		ct:      ct,
		metrics: metrics,
		rate:    newTransferReporter("tx"),
		Done:    make(chan struct{}),
	}
}

func (self *Sender) Run() {
	logrus.Info("starting")
	defer logrus.Info("exiting")
	defer self.txb.Close()

	go self.rate.run()

	if err := self.sendStart(); err != nil {
		logrus.Errorf("error sending start (%v)", err)
		return
	}
	if err := self.sendData(); err != nil {
		logrus.Errorf("error sending data (%v)", err)
		return
	}
	if err := self.sendEnd(); err != nil {
		logrus.Errorf("error sending end (%v)", err)
	}

	close(self.rate.in)
	close(self.Done)
}

func (self *Sender) sendStart() error {
	if err := stageHeader(&header{uint32(self.seq.Next()), START, 0}, self.txb); err != nil {
		return err
	}
	_, err := self.txb.WriteTo(self.conn)
	return err
}

func (self *Sender) sendData() error {
	for i := 0; i < self.ct; i++ {
		h := &header{uint32(self.seq.Next()), DATA, int64(self.ds.block.Len())}
		if err := stageHeader(h, self.txb); err != nil {
			return err
		}
		self.txb.PushChunk(self.ds.block.Slice(0, self.ds.block.Len()))

		n, err := self.txb.WriteTo(self.conn)
		if err != nil {
			return err
		}

		self.metrics.Tx(n)
		self.rate.in <- &transferReport{time.Now(), n}
	}
	return nil
}

func (self *Sender) sendEnd() error {
	if err := stageHeader(&header{uint32(self.seq.Next()), END, 0}, self.txb); err != nil {
		return err
	}
	_, err := self.txb.WriteTo(self.conn)
	return err
}

package loop

import (
	"net"

	"github.com/openziti/chunkbuf/cmd/chunkbuf/chunkbuf"
	"github.com/openziti/chunkbuf/loop"
	"github.com/sirupsen/logrus"
)

// runPeers attaches the flagged sender/receiver roles to conn and waits for
// them to finish.
func runPeers(conn net.Conn) {
	var metrics *loop.Metrics
	if metricsPrefix != "" {
		var err error
		metrics, err = loop.NewMetrics(conn.LocalAddr(), conn.RemoteAddr(), metricsSnapshotMs, metricsPrefix)
		if err != nil {
			logrus.Fatalf("error creating metrics (%v)", err)
		}
	}

	var rx *loop.Receiver
	if startReceiver {
		rx = loop.NewReceiver(chunkbuf.ActiveProfile, metrics, conn)
		go rx.Run(startHasher)
	}

	var tx *loop.Sender
	if startSender {
		ds, err := loop.NewDataSet(int64(size))
		if err != nil {
			logrus.Fatalf("error creating dataset (%v)", err)
		}
		tx = loop.NewSender(chunkbuf.ActiveProfile, ds, metrics, conn, count)
		go tx.Run()
	}

	if rx != nil {
		<-rx.Done
	}
	if tx != nil {
		<-tx.Done
	}

	metrics.Close()
	metrics.Summarize()
	if metricsPrefix != "" {
		loop.WriteAllSamples()
	}
}

package loop

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSenderReceiverLoop(t *testing.T) {
	ds, err := NewDataSet(4 * 1024)
	assert.NoError(t, err)

	txConn, rxConn := net.Pipe()

	tx := NewSender(nil, ds, nil, txConn, 3)
	rx := NewReceiver(nil, nil, rxConn)

	go tx.Run()
	go rx.Run(true)

	select {
	case <-tx.Done:
	case <-time.After(10 * time.Second):
		t.Fatal("sender timed out")
	}
	select {
	case <-rx.Done:
	case <-time.After(10 * time.Second):
		t.Fatal("receiver timed out")
	}
}

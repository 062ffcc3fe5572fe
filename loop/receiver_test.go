package loop

import (
	"net"
	"testing"
	"time"

	"github.com/openziti/chunkbuf"
	"github.com/stretchr/testify/assert"
)

// A data header announcing a block size below one byte is a framing error;
// the receiver reports it and exits instead of building a receive buffer
// around the bad size.
func TestReceiverRejectsInvalidBlockSize(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	rx := NewReceiver(nil, nil, server)
	go rx.Run(false)

	txb := chunkbuf.NewLooseBuffer()
	assert.NoError(t, stageHeader(&header{0, START, 0}, txb))
	assert.NoError(t, stageHeader(&header{1, DATA, 0}, txb))
	_, err := txb.WriteTo(client)
	assert.NoError(t, err)

	select {
	case <-rx.Done:
	case <-time.After(10 * time.Second):
		assert.Fail(t, "timeout awaiting receiver exit")
	}
}

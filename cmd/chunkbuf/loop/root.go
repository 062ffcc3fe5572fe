package loop

import (
	"github.com/openziti/chunkbuf/cmd/chunkbuf/chunkbuf"
	"github.com/spf13/cobra"
)

func init() {
	loopCmd.PersistentFlags().BoolVarP(&startSender, "sender", "s", false, "Start a sender on connect")
	loopCmd.PersistentFlags().BoolVarP(&startReceiver, "receiver", "r", true, "Start a receiver on connect")
	loopCmd.PersistentFlags().BoolVarP(&startHasher, "hasher", "a", true, "Verify received block hashes")
	loopCmd.PersistentFlags().IntVarP(&size, "size", "z", 1024*1024, "Size of the data set (in bytes)")
	loopCmd.PersistentFlags().IntVarP(&count, "count", "n", 1024, "Send count for data set")
	loopCmd.PersistentFlags().StringVarP(&metricsPrefix, "metrics", "m", "", "Write loop metrics under this path")
	loopCmd.PersistentFlags().IntVar(&metricsSnapshotMs, "snapshot-ms", 1000, "Metrics snapshot interval (ms)")
	chunkbuf.RootCmd.AddCommand(loopCmd)
}

var loopCmd = &cobra.Command{
	Use:   "loop",
	Short: "Loop back a socket for load and veracity measurements",
}
var startSender bool
var startReceiver bool
var startHasher bool
var size int
var count int
var metricsPrefix string
var metricsSnapshotMs int

package loop

import (
	"net"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	loopCmd.AddCommand(loopServerCmd)
}

var loopServerCmd = &cobra.Command{
	Use:   "server <listenAddress>",
	Short: "Start loop server",
	Args:  cobra.ExactArgs(1),
	Run:   loopServer,
}

func loopServer(_ *cobra.Command, args []string) {
	listenAddress, err := net.ResolveTCPAddr("tcp", args[0])
	if err != nil {
		logrus.Fatalf("error parsing listen address (%v)", err)
	}

	listener, err := net.ListenTCP("tcp", listenAddress)
	if err != nil {
		logrus.Fatalf("error listening (%v)", err)
	}

	conn, err := listener.Accept()
	if err != nil {
		logrus.Fatalf("error accepting (%v)", err)
	}

	runPeers(conn)
}

package loop

import (
	"net"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	loopCmd.AddCommand(loopClientCmd)
}

var loopClientCmd = &cobra.Command{
	Use:   "client <serverAddress>",
	Short: "Start loop client",
	Args:  cobra.ExactArgs(1),
	Run:   loopClient,
}

func loopClient(_ *cobra.Command, args []string) {
	serverAddress, err := net.ResolveTCPAddr("tcp", args[0])
	if err != nil {
		logrus.Fatalf("error parsing server address (%v)", err)
	}

	conn, err := net.DialTCP("tcp", nil, serverAddress)
	if err != nil {
		logrus.Fatalf("error dialing server (%v)", err)
	}

	runPeers(conn)
}

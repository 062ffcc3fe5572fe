package ctrl

import (
	"bytes"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	clientCmd.Flags().StringVarP(&clientCommand, "command", "c", "write", "Command to send (start, stop, write, clean)")
	ctrlCmd.AddCommand(clientCmd)
}

var clientCmd = &cobra.Command{
	Use:   "client <path>",
	Short: "Connect to a metrics instance controller",
	Args:  cobra.ExactArgs(1),
	Run:   client,
}
var clientCommand string

func client(_ *cobra.Command, args []string) {
	path := args[0]
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		logrus.Fatalf("error resolving [%s] (%v)", path, err)
	}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		logrus.Fatalf("error dialing [%s] (%v)", path, err)
	}
	if _, err := conn.Write([]byte(fmt.Sprintf("%s\n", clientCommand))); err != nil {
		logrus.Fatalf("error writing command (%v)", err)
	}
	_ = conn.CloseWrite()
	response := new(bytes.Buffer)
	if _, err := io.Copy(response, conn); err != nil {
		logrus.Fatalf("error reading response (%v)", err)
	}
	logrus.Infof("response:\n%s\n", response.String())
	_ = conn.Close()
}

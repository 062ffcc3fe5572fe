package ctrl

import (
	"github.com/openziti/chunkbuf/cmd/chunkbuf/chunkbuf"
	"github.com/spf13/cobra"
)

func init() {
	chunkbuf.RootCmd.AddCommand(ctrlCmd)
}

var ctrlCmd = &cobra.Command{
	Use:   "ctrl",
	Short: "Control instrumented buffer instances",
}

package main

import (
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/michaelquigley/pfxlog"
	"github.com/openziti/chunkbuf/cmd/chunkbuf/chunkbuf"
	_ "github.com/openziti/chunkbuf/cmd/chunkbuf/ctrl"
	_ "github.com/openziti/chunkbuf/cmd/chunkbuf/influx"
	_ "github.com/openziti/chunkbuf/cmd/chunkbuf/loop"
	"github.com/sirupsen/logrus"
)

func init() {
	pfxlog.Global(logrus.InfoLevel)
	pfxlog.SetPrefix("github.com/openziti/")
}

func main() {
	defer logrus.Debugf("finished")

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGQUIT)
		buf := make([]byte, 1<<20)
		for {
			<-sigs
			stacklen := runtime.Stack(buf, true)
			log.Printf("=== received SIGQUIT ===\n*** goroutine dump...\n%s\n*** end\n", buf[:stacklen])
		}
	}()

	if err := chunkbuf.RootCmd.Execute(); err != nil {
		logrus.Fatalf("error (%v)", err)
	}
}

package influx

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/openziti/chunkbuf/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	influxCmd.AddCommand(influxLoadCmd)
}

var influxLoadCmd = &cobra.Command{
	Use:   "load <metricsRoot>",
	Short: "Load metrics data into the analyzer",
	Args:  cobra.ExactArgs(1),
	Run:   influxLoad,
}

func influxLoad(_ *cobra.Command, args []string) {
	peers, err := discoverPeers(args[0])
	if err != nil {
		logrus.Fatalf("error discovering metrics peers (%v)", err)
	}

	authToken := ""
	if influxDbUsername != "" || influxDbPassword != "" {
		authToken = fmt.Sprintf("%s:%s", influxDbUsername, influxDbPassword)
	}
	client := influxdb2.NewClient(influxDbUrl, authToken)
	writeApi := client.WriteAPI("", influxDbDatabase)

	for _, peer := range peers {
		for _, dataset := range datasets {
			path := filepath.Join(peer.path, dataset+".csv")
			if _, err := os.Stat(path); err != nil {
				continue
			}
			data, err := util.ReadSamples(path)
			if err != nil {
				logrus.Fatalf("error reading dataset [%s] (%v)", path, err)
			}
			for ts, v := range data {
				t := time.Unix(0, ts)
				p := influxdb2.NewPoint(dataset, nil, map[string]interface{}{"v": v}, t).AddTag("peer", peer.id)
				writeApi.WritePoint(p)
			}
			logrus.Infof("wrote %d points for peer [%s] dataset [%s]", len(data), peer.id, dataset)
		}
	}

	client.Close()
}

var datasets = []string{
	"allocations",
	"flushed_bytes",
	"flushed_chunks",
	"pushed_bytes",
	"pushed_chunks",
	"split_chunks",
	"gathers",
	"gathered_slices",
	"advanced_bytes",
	"extracted_bytes",
	"rx_bytes",
	"tx_bytes",
}

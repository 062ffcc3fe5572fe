package influx

import (
	"path/filepath"

	"github.com/openziti/chunkbuf/util"
)

type peer struct {
	id   string
	path string
}

// discoverPeers finds the metrics dataset directories under root written by
// the buffer instrument and the loop harness.
func discoverPeers(root string) ([]*peer, error) {
	metricsMap, err := util.DiscoverMetrics(root)
	if err != nil {
		return nil, err
	}

	var peers []*peer
	for metricsRoot, metricsId := range metricsMap {
		switch metricsId.Id {
		case "chunkbuf.1", "chunkbufLoop":
			peers = append(peers, &peer{
				id:   filepath.Base(metricsRoot),
				path: metricsRoot,
			})
		}
	}
	return peers, nil
}

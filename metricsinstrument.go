package chunkbuf

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openziti/chunkbuf/cf"
	"github.com/openziti/chunkbuf/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var localEnabled = false
var localEnabledOverridden = false

// metricsInstrument snapshots per-buffer counters on an interval and writes
// them out as CSV sample datasets (one directory per buffer instance, with a
// metrics.id descriptor), the shape the influx loader consumes.
type metricsInstrument struct {
	lock      *sync.Mutex
	config    *metricsInstrumentConfig
	instances []*metricsInstrumentInstance
}

type metricsInstrumentConfig struct {
	Path       string `cf:"path"`
	SnapshotMs int    `cf:"snapshot_ms"`
	Enabled    bool   `cf:"enabled"`
}

func NewMetricsInstrument(config map[string]interface{}) (Instrument, error) {
	i := &metricsInstrument{
		lock: new(sync.Mutex),
		config: &metricsInstrumentConfig{
			SnapshotMs: 1000,
			Enabled:    true,
		},
	}
	if err := cf.Load(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	if localEnabledOverridden {
		i.config.Enabled = localEnabled
	}
	cl, err := util.GetCtrlListener(i.config.Path, "chunkbuf")
	if err != nil {
		return nil, errors.Wrap(err, "unable to get metrics ctrl listener")
	}
	cl.AddCallback("start", func(string) error {
		localEnabled = true
		localEnabledOverridden = true

		i.config.Enabled = true
		return nil
	})
	cl.AddCallback("stop", func(string) error {
		localEnabled = false
		localEnabledOverridden = true

		i.config.Enabled = false
		return nil
	})
	cl.AddCallback("write", func(string) error {
		err := i.writeAllSamples()
		if err != nil {
			logrus.Errorf("error writing samples (%v)", err)
		}
		return err
	})
	cl.AddCallback("clean", func(string) error {
		i.clean()
		return nil
	})
	cl.Start()
	logrus.Infof(cf.Dump("config", i.config))
	return i, nil
}

func (self *metricsInstrument) NewInstance(id string) InstrumentInstance {
	self.lock.Lock()
	defer self.lock.Unlock()
	ii := &metricsInstrumentInstance{id: id, config: self.config, close: make(chan struct{}, 1)}
	go ii.snapshotter(self.config.SnapshotMs)
	self.instances = append(self.instances, ii)
	return ii
}

func (self *metricsInstrument) writeAllSamples() error {
	self.lock.Lock()
	defer self.lock.Unlock()

	for _, ii := range self.instances {
		if err := os.MkdirAll(self.config.Path, os.ModePerm); err != nil {
			return err
		}
		outPath, err := ioutil.TempDir(self.config.Path, fmt.Sprintf("%s_", ii.id))
		if err != nil {
			return err
		}
		logrus.Infof("writing metrics to: %s", outPath)

		if err := util.WriteMetricsId(fmt.Sprintf("chunkbuf.%d", profileVersion), outPath, nil); err != nil {
			return err
		}
		if err := util.WriteSamples("allocations", outPath, ii.allocations); err != nil {
			return err
		}
		if err := util.WriteSamples("flushed_bytes", outPath, ii.flushedBytes); err != nil {
			return err
		}
		if err := util.WriteSamples("flushed_chunks", outPath, ii.flushedChunks); err != nil {
			return err
		}
		if err := util.WriteSamples("pushed_bytes", outPath, ii.pushedBytes); err != nil {
			return err
		}
		if err := util.WriteSamples("pushed_chunks", outPath, ii.pushedChunks); err != nil {
			return err
		}
		if err := util.WriteSamples("split_chunks", outPath, ii.splitChunks); err != nil {
			return err
		}
		if err := util.WriteSamples("gathers", outPath, ii.gathers); err != nil {
			return err
		}
		if err := util.WriteSamples("gathered_slices", outPath, ii.gatheredSlices); err != nil {
			return err
		}
		if err := util.WriteSamples("advanced_bytes", outPath, ii.advancedBytes); err != nil {
			return err
		}
		if err := util.WriteSamples("extracted_bytes", outPath, ii.extractedBytes); err != nil {
			return err
		}
	}
	return nil
}

func (self *metricsInstrument) clean() {
	self.lock.Lock()
	defer self.lock.Unlock()

	idx := self.findClosed()
	for idx != -1 {
		logrus.Infof("removed metricsInstrumentInstance #%p", self.instances[idx])
		self.instances = append(self.instances[:idx], self.instances[idx+1:]...)
		idx = self.findClosed()
	}
}

func (self *metricsInstrument) findClosed() int {
	for i, ii := range self.instances {
		if ii.closed {
			return i
		}
	}
	return -1
}

type metricsInstrumentInstance struct {
	id     string
	config *metricsInstrumentConfig
	close  chan struct{}
	closed bool

	allocations      []*util.Sample
	allocationsAccum int64

	flushedBytes       []*util.Sample
	flushedBytesAccum  int64
	flushedChunks      []*util.Sample
	flushedChunksAccum int64

	pushedBytes       []*util.Sample
	pushedBytesAccum  int64
	pushedChunks      []*util.Sample
	pushedChunksAccum int64
	splitChunks       []*util.Sample
	splitChunksAccum  int64

	gathers             []*util.Sample
	gathersAccum        int64
	gatheredSlices      []*util.Sample
	gatheredSlicesAccum int64
	advancedBytes       []*util.Sample
	advancedBytesAccum  int64
	extractedBytes      []*util.Sample
	extractedBytesAccum int64
}

/*
 * allocation
 */
func (self *metricsInstrumentInstance) Allocate(_ string) {
	if self.config.Enabled {
		atomic.AddInt64(&self.allocationsAccum, 1)
	}
}

/*
 * write side
 */
func (self *metricsInstrumentInstance) Flush(sz int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.flushedBytesAccum, int64(sz))
		atomic.AddInt64(&self.flushedChunksAccum, 1)
	}
}

func (self *metricsInstrumentInstance) PushChunk(sz int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.pushedBytesAccum, int64(sz))
		atomic.AddInt64(&self.pushedChunksAccum, 1)
	}
}

func (self *metricsInstrumentInstance) SplitChunk(parts int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.splitChunksAccum, int64(parts))
	}
}

/*
 * read side
 */
func (self *metricsInstrumentInstance) Gather(slices int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.gathersAccum, 1)
		atomic.AddInt64(&self.gatheredSlicesAccum, int64(slices))
	}
}

func (self *metricsInstrumentInstance) Advance(cnt int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.advancedBytesAccum, int64(cnt))
	}
}

func (self *metricsInstrumentInstance) Extract(sz int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.extractedBytesAccum, int64(sz))
	}
}

/*
 * instrument lifecycle
 */
func (self *metricsInstrumentInstance) Shutdown() {
	logrus.Infof("closing snapshotter")
	if !self.closed {
		self.closed = true
		close(self.close)
	}
}

func (self *metricsInstrumentInstance) snapshotter(ms int) {
	logrus.Infof("started")
	defer logrus.Infof("exited")
	for {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		self.snapshot()
		select {
		case <-self.close:
			return
		default:
		}
	}
}

func (self *metricsInstrumentInstance) snapshot() {
	now := time.Now()
	self.allocations = append(self.allocations, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.allocationsAccum, 0)})
	self.flushedBytes = append(self.flushedBytes, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.flushedBytesAccum, 0)})
	self.flushedChunks = append(self.flushedChunks, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.flushedChunksAccum, 0)})
	self.pushedBytes = append(self.pushedBytes, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.pushedBytesAccum, 0)})
	self.pushedChunks = append(self.pushedChunks, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.pushedChunksAccum, 0)})
	self.splitChunks = append(self.splitChunks, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.splitChunksAccum, 0)})
	self.gathers = append(self.gathers, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.gathersAccum, 0)})
	self.gatheredSlices = append(self.gatheredSlices, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.gatheredSlicesAccum, 0)})
	self.advancedBytes = append(self.advancedBytes, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.advancedBytesAccum, 0)})
	self.extractedBytes = append(self.extractedBytes, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.extractedBytesAccum, 0)})
}

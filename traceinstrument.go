package chunkbuf

import (
	"fmt"
	"sync"

	"github.com/openziti/chunkbuf/cf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// traceInstrument prints buffer events to stdout as they happen, for eyeball
// debugging of staging and queue behavior.
type traceInstrument struct {
	config *traceInstrumentConfig
}

type traceInstrumentConfig struct {
	Allocation bool `cf:"allocation"`
	WriteSide  bool `cf:"write_side"`
	ReadSide   bool `cf:"read_side"`
}

type traceInstrumentInstance struct {
	id   string
	lock sync.Mutex
	i    *traceInstrument
}

func NewTraceInstrument(config map[string]interface{}) (Instrument, error) {
	i := &traceInstrument{
		config: &traceInstrumentConfig{
			Allocation: true,
			WriteSide:  true,
			ReadSide:   true,
		},
	}
	if err := cf.Load(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	logrus.Infof(cf.Dump("config", i.config))
	return i, nil
}

func (self *traceInstrument) NewInstance(id string) InstrumentInstance {
	return &traceInstrumentInstance{
		id: id,
		i:  self,
	}
}

func (self *traceInstrumentInstance) trace(line string) {
	self.lock.Lock()
	fmt.Println(line)
	self.lock.Unlock()
}

/*
 * allocation
 */
func (self *traceInstrumentInstance) Allocate(poolId string) {
	if self.i.config.Allocation {
		self.trace(fmt.Sprintf("&& %-24s ALLOCATE [%s]", self.id, poolId))
	}
}

/*
 * write side
 */
func (self *traceInstrumentInstance) Flush(sz int) {
	if self.i.config.WriteSide {
		self.trace(fmt.Sprintf("!! %-24s FLUSH: %d", self.id, sz))
	}
}

func (self *traceInstrumentInstance) PushChunk(sz int) {
	if self.i.config.WriteSide {
		self.trace(fmt.Sprintf("!! %-24s PUSH CHUNK: %d", self.id, sz))
	}
}

func (self *traceInstrumentInstance) SplitChunk(parts int) {
	if self.i.config.WriteSide {
		self.trace(fmt.Sprintf("!! %-24s SPLIT CHUNK: %d parts", self.id, parts))
	}
}

/*
 * read side
 */
func (self *traceInstrumentInstance) Gather(slices int) {
	if self.i.config.ReadSide {
		self.trace(fmt.Sprintf("?? %-24s GATHER: %d slices", self.id, slices))
	}
}

func (self *traceInstrumentInstance) Advance(cnt int) {
	if self.i.config.ReadSide {
		self.trace(fmt.Sprintf("?? %-24s ADVANCE: %d", self.id, cnt))
	}
}

func (self *traceInstrumentInstance) Extract(sz int) {
	if self.i.config.ReadSide {
		self.trace(fmt.Sprintf("?? %-24s EXTRACT: %d", self.id, sz))
	}
}

/*
 * instrument lifecycle
 */
func (self *traceInstrumentInstance) Shutdown() {
	self.trace(fmt.Sprintf("@@ %-24s SHUTDOWN", self.id))
}

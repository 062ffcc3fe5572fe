package chunkbuf

import (
	"github.com/pkg/errors"
)

// Instrument creates per-buffer observers. Implementations must tolerate
// calls from the buffer's owning goroutine at staging/queue mutation rates;
// the nil instrument is the baseline for production use.
type Instrument interface {
	NewInstance(id string) InstrumentInstance
}

// InstrumentInstance observes one buffer instance and its pool.
type InstrumentInstance interface {
	// allocation
	Allocate(poolId string)

	// write side
	Flush(sz int)
	PushChunk(sz int)
	SplitChunk(parts int)

	// read side
	Gather(slices int)
	Advance(cnt int)
	Extract(sz int)

	// instrument lifecycle
	Shutdown()
}

func NewInstrument(name string, config map[string]interface{}) (i Instrument, err error) {
	switch name {
	case "nil":
		return NewNilInstrument(), nil
	case "metrics":
		return NewMetricsInstrument(config)
	case "trace":
		return NewTraceInstrument(config)
	default:
		return nil, errors.Errorf("unknown instrument '%s'", name)
	}
}

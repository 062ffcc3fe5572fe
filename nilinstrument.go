package chunkbuf

type nilInstrument struct{}

func NewNilInstrument() Instrument {
	return &nilInstrument{}
}

func (self *nilInstrument) NewInstance(_ string) InstrumentInstance {
	return &nilInstrumentInstance{}
}

type nilInstrumentInstance struct{}

/*
 * allocation
 */
func (self *nilInstrumentInstance) Allocate(string) {}

/*
 * write side
 */
func (self *nilInstrumentInstance) Flush(int)      {}
func (self *nilInstrumentInstance) PushChunk(int)  {}
func (self *nilInstrumentInstance) SplitChunk(int) {}

/*
 * read side
 */
func (self *nilInstrumentInstance) Gather(int)  {}
func (self *nilInstrumentInstance) Advance(int) {}
func (self *nilInstrumentInstance) Extract(int) {}

/*
 * instrument lifecycle
 */
func (self *nilInstrumentInstance) Shutdown() {}

package chunkbuf

import (
	"io"
	"net"
)

// gatherLimit bounds the slice descriptors prepared for one vectored write.
const gatherLimit = 64

// reader is the read-side capability shared by both variants, letting the
// io adapters advance through the variant so its bookkeeping stays right.
type reader interface {
	IsEmpty() bool
	Front() []byte
	Gather(dst [][]byte) int
	Advance(cnt int)
}

// Write copies p into the staging region through successive writable views,
// implementing io.Writer. It never fails; the error is always nil.
func (self *LooseBuffer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		n := copy(self.Writable(), p)
		self.Commit(n)
		p = p[n:]
	}
	return total, nil
}

// WriteString implements io.StringWriter.
func (self *LooseBuffer) WriteString(s string) (int, error) {
	return self.Write([]byte(s))
}

// Read copies unread bytes into p and advances past them, implementing
// io.Reader. An empty buffer reads io.EOF.
func (self *LooseBuffer) Read(p []byte) (int, error) {
	return readFrom(self, p)
}

// WriteTo drains the buffer into w, implementing io.WriterTo. Slices are
// gathered into a net.Buffers so a connection that supports vectored I/O
// takes the whole batch in one writev; the read cursor advances by exactly
// the bytes w accepted, so a short write leaves the remainder regatherable.
func (self *LooseBuffer) WriteTo(w io.Writer) (int64, error) {
	return writeTo(self, w)
}

// Write copies p into the staging region through successive writable views,
// implementing io.Writer. Views are clamped to the usable ceiling, so a
// large p simply cycles through more flushes. It never fails; the error is
// always nil.
func (self *StrictBuffer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		n := copy(self.Writable(), p)
		self.Commit(n)
		p = p[n:]
	}
	return total, nil
}

// WriteString implements io.StringWriter.
func (self *StrictBuffer) WriteString(s string) (int, error) {
	return self.Write([]byte(s))
}

// Read copies unread bytes into p and advances past them, implementing
// io.Reader. An empty buffer reads io.EOF.
func (self *StrictBuffer) Read(p []byte) (int, error) {
	return readFrom(self, p)
}

// WriteTo drains the buffer into w, implementing io.WriterTo.
func (self *StrictBuffer) WriteTo(w io.Writer) (int64, error) {
	return writeTo(self, w)
}

func readFrom(buf reader, p []byte) (int, error) {
	if buf.IsEmpty() {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	total := 0
	for total < len(p) && !buf.IsEmpty() {
		n := copy(p[total:], buf.Front())
		buf.Advance(n)
		total += n
	}
	return total, nil
}

func writeTo(buf reader, w io.Writer) (int64, error) {
	var scratch [gatherLimit][]byte
	total := int64(0)
	for !buf.IsEmpty() {
		n := buf.Gather(scratch[:])
		bufs := make(net.Buffers, n)
		copy(bufs, scratch[:n])
		written, err := bufs.WriteTo(w)
		if written > 0 {
			buf.Advance(int(written))
		}
		total += written
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

package console

import (
	"io"
	"sync"
)

// AsyncReader turns a blocking reader (e.g. os.Stdin) into one suitable
// for a Port: a background goroutine pumps data and Read only returns what
// has already arrived.
type AsyncReader struct {
	lock    sync.Mutex
	pending []byte
	err     error
}

// NewAsyncReader starts pumping r.
func NewAsyncReader(r io.Reader) *AsyncReader {
	a := &AsyncReader{}
	go a.pump(r)
	return a
}

func (a *AsyncReader) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		a.lock.Lock()
		a.pending = append(a.pending, buf[:n]...)
		if err != nil {
			a.err = err
		}
		a.lock.Unlock()
		if err != nil {
			return
		}
	}
}

// Read implements io.Reader without blocking. The pump's terminal error is
// reported once all pending data is consumed.
func (a *AsyncReader) Read(p []byte) (int, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	n := copy(p, a.pending)
	a.pending = a.pending[n:]
	if len(a.pending) == 0 && a.err != nil {
		return n, a.err
	}
	return n, nil
}

// Conn combines a reader and a writer into a Port.
type Conn struct {
	io.Reader
	io.Writer
}

package simhw

import "io"

// loopbackConn feeds everything written to it straight back as something
// to be read, via an in-memory pipe.
type loopbackConn struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func newLoopbackConn() *loopbackConn {
	r, w := io.Pipe()
	return &loopbackConn{r: r, w: w}
}

func (l *loopbackConn) Read(p []byte) (int, error) {
	return l.r.Read(p)
}

func (l *loopbackConn) Write(p []byte) (int, error) {
	return l.w.Write(p)
}

func (l *loopbackConn) Close() error {
	_ = l.r.Close()
	return l.w.Close()
}

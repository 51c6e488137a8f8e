package simhw

import (
	"io"
	"sync"
)

// ioSwitch is the wire for one terminal. Nothing is attached to it at
// construction time; WriteDataRegister's bytes vanish silently until a
// client attaches, and the receive pump blocks on waitAttached until one
// does. Only one wire may ever be attached per terminal, mirroring a
// physical terminal's single keyboard/display pair.
type ioSwitch struct {
	mu       sync.Mutex
	attached io.ReadWriteCloser
	ready    chan struct{}
}

func newIOSwitch() *ioSwitch {
	return &ioSwitch{ready: make(chan struct{})}
}

// enable attaches conn as this terminal's wire. It reports false if a
// wire is already attached, leaving the existing one in place.
func (s *ioSwitch) enable(conn io.ReadWriteCloser) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached != nil {
		return false
	}
	s.attached = conn
	close(s.ready)
	return true
}

// waitAttached blocks until a wire has been attached, then returns it.
func (s *ioSwitch) waitAttached() io.ReadWriteCloser {
	<-s.ready
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// write delivers p to the attached wire, or discards it if nothing has
// attached yet - output produced before any client connects has nowhere
// to be displayed.
func (s *ioSwitch) write(p []byte) (int, error) {
	s.mu.Lock()
	conn := s.attached
	s.mu.Unlock()
	if conn == nil {
		return len(p), nil
	}
	return conn.Write(p)
}

// Package simhw is a concrete, in-process implementation of
// termcore.Hardware: it models each terminal's keyboard/display pair as a
// pair of goroutines wired to an attachable io.ReadWriteCloser, rather
// than memory-mapped UART registers. It exists so the driver can be
// exercised and tested without real hardware, and so a front end
// (internal/termproxy, cmd/multitermd) has something to attach an SSH
// channel or os.Stdin/os.Stdout to.
package simhw

import (
	"io"
	"sync"

	"multitermd/internal/termcore"
)

// Simulator implements termcore.Hardware for a fixed number of terminals.
// It must be bound to a *termcore.Driver with Bind before InitHardware is
// called on it (i.e. before the driver's InitTerminal).
type Simulator struct {
	driver *termcore.Driver
	wires  []*ioSwitch

	latchMu sync.Mutex
	latch   []byte
}

// New constructs a Simulator for n terminals. None of them have a wire
// attached yet; call Attach or Loopback before or after InitTerminal.
func New(n int) *Simulator {
	s := &Simulator{
		wires: make([]*ioSwitch, n),
		latch: make([]byte, n),
	}
	for i := range s.wires {
		s.wires[i] = newIOSwitch()
	}
	return s
}

// Bind associates the Simulator with the driver whose interrupts it will
// deliver. It must be called before any terminal is initialized.
func (s *Simulator) Bind(d *termcore.Driver) {
	s.driver = d
}

// Attach wires conn to terminal term: bytes written to conn by its owner
// are treated as keystrokes and delivered via ReceiveInterrupt, and bytes
// the driver transmits are written to conn. It reports false if term is
// out of range or already has a wire attached.
func (s *Simulator) Attach(term int, conn io.ReadWriteCloser) bool {
	if term < 0 || term >= len(s.wires) {
		return false
	}
	return s.wires[term].enable(conn)
}

// Loopback wires terminal term back to itself, so that whatever the
// terminal displays is immediately visible as typed input. This is
// enough to drive a self-contained demo (e.g. typing into the terminal
// echoes, and anything written via WriteTerminal is "typed" right back)
// without a real client attached.
func (s *Simulator) Loopback(term int) bool {
	return s.Attach(term, newLoopbackConn())
}

// InitHardware starts the goroutine that turns conn reads into
// ReceiveInterrupt calls. It always succeeds; the simulator has no
// hardware to fail to bring up.
func (s *Simulator) InitHardware(term int) error {
	go s.receivePump(term)
	return nil
}

// WriteDataRegister begins transmission of b by writing it to the
// attached wire (or discarding it, if none is attached) on a fresh
// goroutine, and then delivers the matching TransmitInterrupt from that
// goroutine. The interrupt is never delivered synchronously, since the
// driver calls WriteDataRegister with its monitor held.
func (s *Simulator) WriteDataRegister(term int, b byte) {
	go func() {
		_, _ = s.wires[term].write([]byte{b})
		s.driver.TransmitInterrupt(term)
	}()
}

// ReadDataRegister returns the most recently latched input byte for
// term. It is called by the driver from inside ReceiveInterrupt, exactly
// once per call, after receivePump has already stored the byte.
func (s *Simulator) ReadDataRegister(term int) byte {
	s.latchMu.Lock()
	defer s.latchMu.Unlock()
	return s.latch[term]
}

func (s *Simulator) receivePump(term int) {
	conn := s.wires[term].waitAttached()
	buf := make([]byte, 1)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		s.latchMu.Lock()
		s.latch[term] = buf[0]
		s.latchMu.Unlock()

		s.driver.ReceiveInterrupt(term)
	}
}

// Package termcore implements the concurrency core of a multi-terminal
// character device driver: a monitor that owns per-terminal state,
// coordinates interrupt handlers with user threads, orders echo and
// output characters onto a single shared transmit channel, applies line
// discipline, and enforces at-most-one transmission in flight per
// terminal.
//
// Every exported method of Driver other than NumTerminals acquires the driver's monitor (a
// sync.Mutex) for its full duration, exactly like the teacher's Asynk and
// RingDelayer acquire their own sync.Cond-backed locks; the two blocking
// operations, WriteTerminal and ReadTerminal, wait on a sync.Cond in a
// for loop that re-tests its predicate, never an if.
package termcore

import "sync"

// MaxTerminals is the reference terminal count N a hosting binary should
// default to when it has no more specific configuration of its own.
// NewDriver takes n as an explicit argument rather than a compile-time
// constant, so a caller is always free to override this default.
const MaxTerminals = 8

// Driver owns the monitor and the state of a fixed number of terminals.
type Driver struct {
	mu sync.Mutex

	hw        Hardware
	terminals []*terminal
	bufCap    int
	inited    bool
}

// NewDriver constructs a Driver for n terminals, each with primary ring
// capacity bufCap, backed by hw. The driver is not yet initialized; call
// InitTerminalDriver before any other operation.
func NewDriver(n, bufCap int, hw Hardware) *Driver {
	d := &Driver{
		hw:     hw,
		bufCap: bufCap,
	}
	d.terminals = make([]*terminal, n)
	for i := range d.terminals {
		d.terminals[i] = newTerminal(&d.mu, bufCap)
	}
	return d
}

// NumTerminals returns the terminal count N this driver was constructed
// with. The count never changes after NewDriver, so this takes no lock.
func (d *Driver) NumTerminals() int {
	return len(d.terminals)
}

// InitTerminalDriver zeroes all per-terminal state and marks the driver
// initialized. It fails if already initialized.
func (d *Driver) InitTerminalDriver() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inited {
		return ErrDriverAlreadyInitialized
	}
	for _, t := range d.terminals {
		t.reset()
		t.inited = false
	}
	d.inited = true
	return nil
}

func (d *Driver) validTerm(term int) bool {
	return term >= 0 && term < len(d.terminals)
}

// InitTerminal validates term, resets that terminal's statistics, marks
// it initialized, and invokes the hardware shim's one-time setup for it.
// A terminal's inited flag is set regardless of whether the hardware
// setup succeeds, so a failed InitTerminal is never retried for the same
// terminal.
func (d *Driver) InitTerminal(term int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return ErrDriverNotInitialized
	}
	if !d.validTerm(term) {
		return ErrInvalidTerminal
	}
	t := d.terminals[term]
	if t.inited {
		return ErrTerminalAlreadyInitialized
	}

	t.stats = Stats{}
	t.inited = true

	if err := d.hw.InitHardware(term); err != nil {
		return hardwareInitErr(term, err)
	}
	return nil
}

// WriteTerminal blocks until every byte of buf has been placed into the
// terminal's output rings, interleaved correctly with concurrent
// ReceiveInterrupt echoing. It does not wait for the bytes to drain to
// hardware: back-pressure comes only from the output ring filling up, so
// writers on distinct terminals remain independent of each other and of
// the single in-flight hardware byte.
func (d *Driver) WriteTerminal(term int, buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validateTerminal(term); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	t := d.terminals[term]
	for _, b := range buf {
		for t.out.Full() {
			t.outSpace.Wait()
		}

		if b == lf {
			t.out.Push(cr)
			t.outTag.Push(newlineContinuation)
			t.lineLen = 0
		} else {
			t.out.Push(b)
			t.outTag.Push(noContinuation)
			t.lineLen++
		}

		d.transmit(term, t)
	}

	t.stats.UserIn += uint64(len(buf))
	return len(buf), nil
}

func (d *Driver) validateTerminal(term int) error {
	if !d.inited {
		return ErrDriverNotInitialized
	}
	if !d.validTerm(term) {
		return ErrInvalidTerminal
	}
	if !d.terminals[term].inited {
		return ErrTerminalNotInitialized
	}
	return nil
}

// ReadTerminal blocks until the terminal's input ring contains a
// newline, then copies bytes into buf until either buf is full or the
// last copied byte is '\n'. It never returns a partial line unless buf is
// too small to hold it, in which case the remainder is retrieved by a
// subsequent call.
func (d *Driver) ReadTerminal(term int, buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validateTerminal(term); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	t := d.terminals[term]
	for !t.input.Contains(lf) {
		t.inputReady.Wait()
	}

	n := 0
	for n < len(buf) {
		c, ok := t.input.Pop()
		if !ok {
			break
		}
		buf[n] = c
		n++
		if c == lf {
			break
		}
	}

	t.stats.UserOut += uint64(n)
	return n, nil
}

// TerminalDriverStatistics returns a point-in-time snapshot of all N
// terminals' counters, taken atomically under the monitor.
func (d *Driver) TerminalDriverStatistics() ([]Stats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return nil, ErrDriverNotInitialized
	}

	out := make([]Stats, len(d.terminals))
	for i, t := range d.terminals {
		out[i] = t.stats
	}
	return out, nil
}

// ReceiveInterrupt handles a hardware notification that a new input byte
// is latched in terminal term's input data register. It never blocks.
// Spurious interrupts for an unregistered terminal are ignored rather
// than surfaced, so they cannot corrupt monitor invariants.
func (d *Driver) ReceiveInterrupt(term int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited || !d.validTerm(term) {
		return
	}
	t := d.terminals[term]
	if !t.inited {
		return
	}

	c := d.hw.ReadDataRegister(term)
	t.stats.TTYIn++
	t.applyReceivedByte(c)
	d.transmit(term, t)
}

// TransmitInterrupt handles a hardware notification that the byte
// previously handed to WriteDataRegister has finished transmitting. It
// never blocks.
func (d *Driver) TransmitInterrupt(term int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited || !d.validTerm(term) {
		return
	}
	t := d.terminals[term]
	if !t.inited {
		return
	}

	t.txBusy = false
	d.transmit(term, t)
}

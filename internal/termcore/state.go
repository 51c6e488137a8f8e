package termcore

import (
	"sync"

	"multitermd/internal/ring"
)

// Stats holds the four monotonically non-decreasing counters kept per
// terminal: bytes received from the keyboard, bytes handed to the
// display hardware, bytes accepted from WriteTerminal, and bytes
// delivered to ReadTerminal.
type Stats struct {
	TTYIn   uint64
	TTYOut  uint64
	UserIn  uint64
	UserOut uint64
}

// terminal is the per-terminal state block: five rings (plus the echoTag
// and outTag rings that ride alongside echo and out), the transmit-busy
// flag, the running input-line length, the two condition variables, and
// the statistics counters. All fields are only ever touched while the
// owning Driver's monitor is held.
type terminal struct {
	input       *ring.Ring
	echo        *ring.Ring
	echoTag     *ring.Ring
	echoSpecial *ring.Ring
	out         *ring.Ring
	outTag      *ring.Ring
	outSpecial  *ring.Ring

	txBusy  bool
	lineLen int

	// outSpace is signaled when out gains free space or txBusy becomes
	// false. inputReady is signaled when input gains a newline anywhere
	// in its contents. Kept separate rather than fused, per spec.
	outSpace   *sync.Cond
	inputReady *sync.Cond

	stats  Stats
	inited bool
}

func newTerminal(mu *sync.Mutex, bufCap int) *terminal {
	return &terminal{
		input:       ring.New(bufCap),
		echo:        ring.New(bufCap),
		echoTag:     ring.New(bufCap),
		echoSpecial: ring.New(2),
		out:         ring.New(bufCap),
		outTag:      ring.New(bufCap),
		outSpecial:  ring.New(2),

		outSpace:   sync.NewCond(mu),
		inputReady: sync.NewCond(mu),
	}
}

// lineLenConsistent reports whether lineLen matches invariant 3: the
// number of characters in input following the last newline (or the full
// count, if input holds no newline at all).
func (t *terminal) lineLenConsistent() bool {
	return t.lineLen == t.input.CountAfterLast(lf)
}

// reset zeroes the terminal's rings, flags, and statistics, without
// touching inited or the condition variables.
func (t *terminal) reset() {
	t.input.Reset()
	t.echo.Reset()
	t.echoTag.Reset()
	t.echoSpecial.Reset()
	t.out.Reset()
	t.outTag.Reset()
	t.outSpecial.Reset()
	t.txBusy = false
	t.lineLen = 0
	t.stats = Stats{}
}

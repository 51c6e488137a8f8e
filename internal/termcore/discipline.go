package termcore

// Control characters the line discipline treats specially.
const (
	bell      = '\a'
	backspace = '\b'
	del       = 0x7f
	cr        = '\r'
	lf        = '\n'
	space     = ' '
)

// Tags recorded alongside a byte pushed onto echo or out, so the transmit
// arbiter knows, at the moment it dequeues that byte, whether a follow-up
// sequence must be injected into the matching special ring. Deferring the
// injection to pop time - rather than staging it into the special ring
// immediately - keeps it from jumping ahead of ordinary bytes the primary
// ring already holds in front of it.
const (
	noContinuation     = 0
	newlineContinuation = 1
	eraseContinuation   = 2
)

// applyReceivedByte implements the line discipline for one byte latched by
// ReceiveInterrupt: newline canonicalization, canonical backspace erase,
// and the overflow/empty-line bell. The caller must hold the driver's
// monitor; this never blocks.
func (t *terminal) applyReceivedByte(c byte) {
	switch {
	case c == cr || c == lf:
		t.input.Push(lf)
		t.echo.Push(cr)
		t.echoTag.Push(newlineContinuation)
		t.lineLen = 0
		t.inputReady.Signal()

	case c == backspace || c == del:
		if t.lineLen > 0 {
			t.input.DropLast()
			t.lineLen--
			t.echo.Push(backspace)
			t.echoTag.Push(eraseContinuation)
		} else {
			t.echo.Push(bell)
			t.echoTag.Push(noContinuation)
		}

	default:
		if t.input.Full() {
			t.echo.Push(bell)
			t.echoTag.Push(noContinuation)
		} else {
			t.input.Push(c)
			t.lineLen++
			t.echo.Push(c)
			t.echoTag.Push(noContinuation)
		}
	}
}

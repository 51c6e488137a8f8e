package termcore

import "multitermd/internal/ring"

// transmit enforces at most one outstanding byte per terminal. If a byte
// is already in flight it does nothing. Otherwise it pops the highest
// priority non-empty source - echoSpecial, echo, outSpecial, out, in that
// order - and hands the byte to the hardware. Popping from out frees a
// slot there, so that also wakes a WriteTerminal waiting for space. If
// all four sources are empty it clears txBusy and wakes any WriteTerminal
// waiting for space.
//
// Popping a tagged byte off echo or out injects that byte's follow-up
// sequence into the matching special ring before returning, so the
// sequence's remaining bytes win priority over whatever the primary ring
// holds next - without ever having been queued there ahead of time.
//
// The caller must hold the driver's monitor. This never blocks: handing a
// byte to Hardware.WriteDataRegister only begins transmission, it does
// not wait for it to complete.
func (d *Driver) transmit(term int, t *terminal) {
	if t.txBusy {
		return
	}

	var c byte
	var ok bool
	switch {
	case !t.echoSpecial.Empty():
		c, ok = t.echoSpecial.Pop()
	case !t.echo.Empty():
		c, ok = t.echo.Pop()
		tag, _ := t.echoTag.Pop()
		stageContinuation(t.echoSpecial, tag)
	case !t.outSpecial.Empty():
		c, ok = t.outSpecial.Pop()
	case !t.out.Empty():
		c, ok = t.out.Pop()
		tag, _ := t.outTag.Pop()
		stageContinuation(t.outSpecial, tag)
		t.outSpace.Signal()
	}

	if !ok {
		t.txBusy = false
		t.outSpace.Signal()
		return
	}

	d.hw.WriteDataRegister(term, c)
	t.txBusy = true
	t.stats.TTYOut++
}

// stageContinuation pushes the bytes implied by tag into special, if any.
// A newline continuation is a bare '\n'; an erase continuation is the
// two-byte "back up, blank, back up again" sequence that makes a
// backspace visibly erase the character it deleted.
func stageContinuation(special *ring.Ring, tag byte) {
	switch tag {
	case newlineContinuation:
		special.Push(lf)
	case eraseContinuation:
		special.Push(space)
		special.Push(backspace)
	}
}

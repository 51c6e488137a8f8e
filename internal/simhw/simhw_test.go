package simhw

import (
	"io"
	"testing"
	"time"

	"multitermd/internal/termcore"
)

// pairConn lets a test inject "keystrokes" on one pipe and observe
// "display" output on another, independent of the Simulator's internal
// loopback wiring.
type pairConn struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pairConn) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pairConn) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p *pairConn) Close() error                { _ = p.r.Close(); return p.w.Close() }

func TestSimulatorDeliversTypedBytesAndDisplayOutput(t *testing.T) {
	sim := New(1)
	driver := termcore.NewDriver(1, 100, sim)
	sim.Bind(driver)

	typedR, typedW := io.Pipe()
	displayR, displayW := io.Pipe()
	sim.Attach(0, &pairConn{r: typedR, w: displayW})

	if err := driver.InitTerminalDriver(); err != nil {
		t.Fatal(err)
	}
	if err := driver.InitTerminal(0); err != nil {
		t.Fatal(err)
	}

	displayed := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := displayR.Read(buf)
			if err != nil {
				return
			}
			if n > 0 {
				displayed <- buf[0]
			}
		}
	}()

	go func() {
		_, _ = typedW.Write([]byte("hi\n"))
	}()

	want := []byte("hi\r\n")
	got := make([]byte, 0, len(want))
	timeout := time.After(2 * time.Second)
	for len(got) < len(want) {
		select {
		case b := <-displayed:
			got = append(got, b)
		case <-timeout:
			t.Fatalf("timed out waiting for display output, got %q so far", got)
		}
	}
	if string(got) != string(want) {
		t.Fatalf("display stream = %q, want %q", got, want)
	}

	buf := make([]byte, 16)
	n, err := driver.ReadTerminal(0, buf)
	if err != nil {
		t.Fatalf("ReadTerminal: %v", err)
	}
	if string(buf[:n]) != "hi\n" {
		t.Fatalf("ReadTerminal = %q, want %q", buf[:n], "hi\n")
	}
}

func TestAttachTwiceFails(t *testing.T) {
	sim := New(1)
	if ok := sim.Attach(0, &pairConn{}); !ok {
		t.Fatalf("first Attach should succeed")
	}
	if ok := sim.Attach(0, &pairConn{}); ok {
		t.Fatalf("second Attach should fail")
	}
}

func TestAttachOutOfRange(t *testing.T) {
	sim := New(1)
	if sim.Attach(5, &pairConn{}) {
		t.Fatalf("Attach on out-of-range terminal should fail")
	}
}

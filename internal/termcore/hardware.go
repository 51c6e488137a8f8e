package termcore

// Hardware is the external collaborator contract a terminal backend must
// satisfy. The driver calls these three methods only from inside its
// monitor, and never waits inside them: a blocking implementation of
// WriteDataRegister or ReadDataRegister would stall every terminal, not
// just its own.
//
// InitHardware performs any one-time setup for a terminal and reports
// success or failure. WriteDataRegister begins transmission of a single
// byte; the implementation is expected to eventually deliver a matching
// TransmitInterrupt call back into the driver. ReadDataRegister returns
// the byte that is latched in response to a ReceiveInterrupt and is
// called at most once per interrupt.
type Hardware interface {
	InitHardware(term int) error
	WriteDataRegister(term int, b byte)
	ReadDataRegister(term int) byte
}

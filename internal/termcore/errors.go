package termcore

import (
	"errors"
	"fmt"
)

var (
	// ErrDriverNotInitialized is returned by any terminal-facing operation
	// called before InitTerminalDriver has succeeded.
	ErrDriverNotInitialized = errors.New("termcore: driver not initialized")

	// ErrDriverAlreadyInitialized is returned by a second call to
	// InitTerminalDriver.
	ErrDriverAlreadyInitialized = errors.New("termcore: driver already initialized")

	// ErrInvalidTerminal is returned when a terminal index is out of range.
	ErrInvalidTerminal = errors.New("termcore: invalid terminal index")

	// ErrTerminalNotInitialized is returned when an operation targets a
	// terminal that has not completed InitTerminal.
	ErrTerminalNotInitialized = errors.New("termcore: terminal not initialized")

	// ErrTerminalAlreadyInitialized is returned by a second call to
	// InitTerminal for the same terminal.
	ErrTerminalAlreadyInitialized = errors.New("termcore: terminal already initialized")

	// ErrHardwareInit is wrapped by InitTerminal when the Hardware shim's
	// own InitHardware call fails, so callers can branch on it with
	// errors.Is regardless of the underlying hardware-specific cause.
	ErrHardwareInit = errors.New("termcore: hardware init failed")
)

func hardwareInitErr(term int, cause error) error {
	return fmt.Errorf("%w: terminal %d: %v", ErrHardwareInit, term, cause)
}

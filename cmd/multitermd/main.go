// Command multitermd hosts a fixed number of simulated terminals behind
// the termcore driver and, optionally, exposes them over SSH. With no
// -port it instead wires terminal 0 straight to the process's own
// stdin/stdout, for manual smoke testing without an SSH client - the
// same role the teacher's -version/local-mode shortcuts play in
// cmd/nosshtradamus, adapted since this driver has no upstream target to
// require.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"os"

	"golang.org/x/crypto/ssh"

	"multitermd/internal/levellog"
	"multitermd/internal/simhw"
	"multitermd/internal/sshproxy"
	"multitermd/internal/termcore"
	"multitermd/internal/termproxy"
)

// stdioConn adapts the process's stdin/stdout to the io.ReadWriteCloser
// simhw.Simulator.Attach expects. Closing it is a no-op: the process
// owns stdin/stdout for its whole lifetime, not just this terminal's.
type stdioConn struct{}

func (stdioConn) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioConn) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioConn) Close() error                { return nil }

func main() {
	var (
		port       int
		terminals  int
		bufCap     int
		hostKeyPth string
		logLevel   string
	)

	flag.IntVar(&port, "port", 0, "SSH listen port (0 disables the SSH front end)")
	flag.IntVar(&terminals, "terminals", termcore.MaxTerminals, "number of terminals")
	flag.IntVar(&bufCap, "bufcap", 100, "primary ring buffer capacity per terminal")
	flag.StringVar(&hostKeyPth, "hostkey", "", "path to a PEM SSH host key (default: generate an ephemeral one)")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	flag.Parse()

	log := levellog.New(levellog.ParseLevel(logLevel))

	sim := simhw.New(terminals)
	driver := termcore.NewDriver(terminals, bufCap, sim)
	sim.Bind(driver)

	if err := driver.InitTerminalDriver(); err != nil {
		log.Errorf("InitTerminalDriver: %v", err)
		os.Exit(1)
	}

	if port == 0 {
		runLocalDemo(driver, sim, log)
		return
	}

	hostKey, err := loadOrGenerateHostKey(hostKeyPth)
	if err != nil {
		log.Errorf("host key: %v", err)
		os.Exit(1)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		log.Errorf("listen on port %d: %v", port, err)
		os.Exit(1)
	}
	log.Infof("multitermd: listening on %s with %d terminals (bufcap %d)", listener.Addr(), terminals, bufCap)

	banner := func(conn ssh.ConnMetadata) string {
		return fmt.Sprintf("multitermd ~ %d terminals available\n", terminals)
	}
	server := termproxy.New(driver, sim, termproxy.Config{
		HostKey: hostKey,
		Banner:  banner,
		Log:     log,
	})
	if err := server.Serve(listener); err != nil {
		log.Errorf("serve: %v", err)
		os.Exit(1)
	}
}

// runLocalDemo wires terminal 0 to the process's own stdin/stdout so a
// developer can type at it directly: typed bytes are delivered through
// ReceiveInterrupt exactly as an attached SSH channel's would be, and
// anything the driver transmits (echo or WriteTerminal output) appears
// on stdout.
func runLocalDemo(driver *termcore.Driver, sim *simhw.Simulator, log *levellog.Logger) {
	if !sim.Attach(0, stdioConn{}) {
		log.Errorf("local demo: terminal 0 unavailable")
		os.Exit(1)
	}
	if err := driver.InitTerminal(0); err != nil {
		log.Errorf("InitTerminal(0): %v", err)
		os.Exit(1)
	}
	log.Infof("multitermd: local demo on terminal 0 (stdin/stdout); type, then Ctrl-C to exit")

	// Block forever; the simulator's receive pump and the driver's own
	// transmit path do the rest of the work from their own goroutines.
	select {}
}

func loadOrGenerateHostKey(path string) (ssh.Signer, error) {
	if path == "" {
		return sshproxy.GenHostKey()
	}
	pemBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ssh.ParsePrivateKey(pemBytes)
}

var _ io.ReadWriteCloser = stdioConn{}

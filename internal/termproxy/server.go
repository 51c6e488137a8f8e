// Package termproxy exposes a termcore.Driver's terminals over SSH,
// one driver terminal per accepted "session" channel. It adapts the
// teacher's sshproxy channel-multiplexing machinery
// (RunProxy/handleSshClientChannel in the nosshtradamus proxy) from
// "reflect bytes to a dialed upstream SSH connection" to "reflect bytes
// to/from one driver terminal selected by session order" - there is no
// upstream here, so the half of the teacher's proxy that dials out and
// authenticates against a target is gone; the half that accepts
// connections, multiplexes channels, and pumps channel data survives in
// adapted form.
package termproxy

import (
	"net"
	"sync"

	"golang.org/x/crypto/ssh"

	"multitermd/internal/simhw"
	"multitermd/internal/termcore"
)

// Logger is the leveled logging surface termproxy needs; *levellog.Logger
// satisfies it without termproxy importing that package directly.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Config configures a Server.
type Config struct {
	// HostKey signs the server's identity. Required.
	HostKey ssh.Signer
	// Banner is sent to connecting clients before authentication, the
	// same ssh.ServerConfig hook the teacher's proxy uses. Nil disables it.
	Banner func(conn ssh.ConnMetadata) string
	// Log receives diagnostic output. Nil discards everything.
	Log Logger
}

// Server accepts SSH connections and hands each session channel the next
// uninitialized terminal on driver, wired through sim.
type Server struct {
	driver *termcore.Driver
	sim    *simhw.Simulator
	sshCfg *ssh.ServerConfig
	log    Logger

	mu       sync.Mutex
	nextTerm int
}

// New builds a Server for driver's terminals, backed by sim. driver must
// already have had InitTerminalDriver called; individual terminals are
// initialized lazily as sessions arrive.
func New(driver *termcore.Driver, sim *simhw.Simulator, cfg Config) *Server {
	lg := cfg.Log
	if lg == nil {
		lg = nopLogger{}
	}

	sshCfg := &ssh.ServerConfig{
		NoClientAuth:  true,
		BannerCallback: cfg.Banner,
	}
	sshCfg.AddHostKey(cfg.HostKey)

	return &Server{
		driver: driver,
		sim:    sim,
		sshCfg: sshCfg,
		log:    lg,
	}
}

// Serve accepts connections from ln until it returns an error (typically
// because ln was closed).
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	sshConn, chans, reqs, err := ssh.NewServerConn(conn, s.sshCfg)
	if err != nil {
		s.log.Warnf("termproxy: handshake with %s failed: %v", conn.RemoteAddr(), err)
		return
	}
	s.log.Infof("termproxy: connection from %s (user %q)", sshConn.RemoteAddr(), sshConn.User())

	go denyGlobalRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}

		term, ok := s.allocateTerminal()
		if !ok {
			_ = newChan.Reject(ssh.ResourceShortage, "no terminals available")
			continue
		}

		channel, requests, err := newChan.Accept()
		if err != nil {
			s.log.Warnf("termproxy: accept channel for terminal %d: %v", term, err)
			continue
		}
		go s.serveSession(term, channel, requests)
	}
	_ = sshConn.Close()
}

// allocateTerminal hands out terminal indices 0..N-1 in order, one per
// session channel, and reports false once all of them are taken.
func (s *Server) allocateTerminal() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextTerm >= s.driver.NumTerminals() {
		return 0, false
	}
	t := s.nextTerm
	s.nextTerm++
	return t, true
}

func denyGlobalRequests(reqs <-chan *ssh.Request) {
	for req := range reqs {
		if req.WantReply {
			_ = req.Reply(false, nil)
		}
	}
}

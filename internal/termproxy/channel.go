package termproxy

import (
	"sync"

	"golang.org/x/crypto/ssh"

	"multitermd/internal/sshproxy"
)

// serveSession services one accepted "session" channel bound to terminal
// term. It mirrors the teacher's handleSshClientChannel loop - accept,
// then pump requests and data for the channel's lifetime - except the
// data pump is the simulator's Attach wiring rather than an io.Copy pair
// to an upstream ssh.Channel: once the terminal is lazily initialized,
// channel reads become ReceiveInterrupt-fed keystrokes and the driver's
// transmit side writes its display bytes straight back to channel.
func (s *Server) serveSession(term int, channel ssh.Channel, requests <-chan *ssh.Request) {
	defer channel.Close()

	var once sync.Once
	ensureActive := func() {
		once.Do(func() {
			if !s.sim.Attach(term, channel) {
				s.log.Warnf("termproxy: terminal %d already has an attached session", term)
				return
			}
			if err := s.driver.InitTerminal(term); err != nil {
				s.log.Errorf("termproxy: InitTerminal(%d): %v", term, err)
				return
			}
			s.log.Infof("termproxy: terminal %d active", term)
		})
	}

	for req := range requests {
		switch req.Type {
		case "pty-req":
			pty, err := sshproxy.InterpretPtyReq(req.Payload)
			if err == nil {
				s.log.Debugf("termproxy: terminal %d pty-req %s", term, pty)
			}
			ensureActive()
			if req.WantReply {
				_ = req.Reply(true, nil)
			}

		case "window-change":
			winch, err := sshproxy.InterpretWindowChange(req.Payload)
			if err == nil {
				s.log.Debugf("termproxy: terminal %d %s", term, winch)
			}
			if req.WantReply {
				_ = req.Reply(true, nil)
			}

		case "shell", "exec":
			ensureActive()
			if req.WantReply {
				_ = req.Reply(true, nil)
			}

		default:
			if req.WantReply {
				_ = req.Reply(false, nil)
			}
		}
	}
}

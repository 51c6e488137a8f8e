/*
 * nosshtradamus: predictive terminal emulation for SSH
 * Copyright 2019 Daniel Selifonov
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package sshproxy holds the pieces of the teacher's SSH proxying layer
// that survive unchanged in a terminal-hosting server: host key
// generation and pty-req/window-change payload parsing. The parts of the
// teacher's proxy.go that dialed and reflected bytes to a second,
// upstream SSH connection have no analogue here - this driver has no
// upstream to dial - and live on instead as internal/termproxy, adapted
// to reflect bytes to a driver terminal.
package sshproxy

import (
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/ssh"
)

// GenHostKey creates a fresh ed25519 SSH host key, for servers that have
// no persistent key of their own to load.
func GenHostKey() (ssh.Signer, error) {
	_, privateKey, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}
	return ssh.NewSignerFromKey(privateKey)
}

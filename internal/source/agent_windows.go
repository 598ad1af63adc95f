//go:build windows
// +build windows

// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package source

import (
	"io"
	"os"

	"github.com/Microsoft/go-winio"
	"github.com/davidmz/go-pageant"
	"golang.org/x/crypto/ssh/agent"
)

const openSSHAgentPipe = `\\.\pipe\openssh-ssh-agent`

// getSSHAgent prefers a Pageant-compatible agent and falls back to the
// OpenSSH for Windows named pipe (SSH_AUTH_SOCK or the default pipe). The
// returned closer releases the pipe.
func getSSHAgent() (agent.Agent, io.Closer) {
	if pageant.Available() {
		return pageant.New(), nopCloser
	}

	pipe := os.Getenv("SSH_AUTH_SOCK")
	if pipe == "" {
		pipe = openSSHAgentPipe
	}
	conn, err := winio.DialPipe(pipe, nil)
	if err != nil || conn == nil {
		return nil, nil
	}
	return agent.NewClient(conn), conn
}

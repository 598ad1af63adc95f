// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultKnownHosts returns ~/.ssh/known_hosts.
func DefaultKnownHosts() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "known_hosts")
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser io.Closer = closerFunc(func() error { return nil })

// dialAgent is replaced in tests.
var dialAgent = getSSHAgent

// authMethods returns the identity file signer when configured, otherwise
// the signers of a running SSH agent. The closer releases the agent
// connection and must be called once the session is done.
func authMethods(opts Options) ([]ssh.AuthMethod, io.Closer, error) {
	if opts.Identity != "" {
		pem, err := os.ReadFile(opts.Identity)
		if err != nil {
			return nil, nil, fmt.Errorf("read identity file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to parse private key: %w", err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nopCloser, nil
	}
	agentClient, closer := dialAgent()
	if agentClient == nil {
		return nil, nil, errors.New("no authentication method available (no identity file configured and no ssh agent found)")
	}
	if closer == nil {
		closer = nopCloser
	}
	return []ssh.AuthMethod{ssh.PublicKeysCallback(agentClient.Signers)}, closer, nil
}

func hostKeyCallback(path string) (ssh.HostKeyCallback, error) {
	if path == "" {
		path = DefaultKnownHosts()
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("load known_hosts %s: %w", path, err)
	}
	return cb, nil
}

func remoteUser(ref Ref) string {
	if ref.User != "" {
		return ref.User
	}
	if u, err := user.Current(); err == nil {
		// Windows reports DOMAIN\user.
		if parts := strings.Split(u.Username, `\`); len(parts) > 1 {
			return parts[1]
		}
		return u.Username
	}
	return ""
}

// fetchSFTP dials ref.Addr, authenticates and reads ref.Path.
func fetchSFTP(ctx context.Context, ref Ref, opts Options) ([]byte, error) {
	auth, agentConn, err := authMethods(opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = agentConn.Close() }()
	hk, err := hostKeyCallback(opts.KnownHosts)
	if err != nil {
		return nil, err
	}
	config := &ssh.ClientConfig{
		User:            remoteUser(ref),
		Auth:            auth,
		HostKeyCallback: hk,
		Timeout:         opts.Timeout,
	}

	d := net.Dialer{Timeout: opts.Timeout}
	conn, err := d.DialContext(ctx, "tcp", ref.Addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", ref.Addr, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, ref.Addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", ref.Addr, err)
	}
	client := ssh.NewClient(c, chans, reqs)
	defer func() { _ = client.Close() }()

	sc, err := sftp.NewClient(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create sftp client: %w", err)
	}
	defer func() { _ = sc.Close() }()

	return readRemote(sc, ref.Path)
}

// readRemote reads path in full through an established SFTP session.
func readRemote(sc *sftp.Client, path string) ([]byte, error) {
	f, err := sc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open remote %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, path)
	if err != nil {
		return nil, fmt.Errorf("read remote %s: %w", path, err)
	}
	return data, nil
}

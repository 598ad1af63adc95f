// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package source

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrInvalidRef is returned for references that cannot be parsed.
var ErrInvalidRef = errors.New("invalid source reference")

// Ref is a parsed source reference.
type Ref struct {
	// Remote is true for sftp:// references.
	Remote bool
	User   string
	// Addr is host:port, port defaulting to 22.
	Addr string
	// Path is the local path, or the remote path as given in the URL.
	Path string
}

// ParseRef parses a local path or an sftp://[user@]host[:port]/path URL.
func ParseRef(ref string) (Ref, error) {
	if ref == "" {
		return Ref{}, fmt.Errorf("%w: empty", ErrInvalidRef)
	}
	if !strings.HasPrefix(strings.ToLower(ref), "sftp://") {
		return Ref{Path: ref}, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}
	if u.Hostname() == "" {
		return Ref{}, fmt.Errorf("%w: missing host in %q", ErrInvalidRef, ref)
	}
	p := strings.TrimPrefix(u.Path, "/")
	if p == "" {
		return Ref{}, fmt.Errorf("%w: missing path in %q", ErrInvalidRef, ref)
	}
	port := u.Port()
	if port == "" {
		port = "22"
	}
	// "sftp://host/etc/x" names the relative path "etc/x"; use "//" for an
	// absolute remote path.
	return Ref{
		Remote: true,
		User:   u.User.Username(),
		Addr:   net.JoinHostPort(u.Hostname(), port),
		Path:   p,
	}, nil
}

// String renders the reference back into its textual form.
func (r Ref) String() string {
	if !r.Remote {
		return r.Path
	}
	user := ""
	if r.User != "" {
		user = r.User + "@"
	}
	return "sftp://" + user + r.Addr + "/" + r.Path
}

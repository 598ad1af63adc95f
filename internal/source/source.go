// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cfgscrub/cfgscrub/internal/logging"
	"github.com/cfgscrub/cfgscrub/internal/transform"
	"github.com/samber/oops"
)

// DefaultTimeout bounds the SSH dial for remote sources.
const DefaultTimeout = 10 * time.Second

// MaxSize caps how many bytes of a source are read, both as stored and after
// decompression.
const MaxSize = 64 << 20

// ErrTooLarge is returned when a source exceeds MaxSize.
var ErrTooLarge = errors.New("source too large")

// sizeLimit is lowered in tests.
var sizeLimit int64 = MaxSize

// readLimited reads r in full and fails with ErrTooLarge past sizeLimit.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, sizeLimit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > sizeLimit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, sizeLimit)
	}
	return data, nil
}

func readLocal(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, path)
}

// Options configures remote access.
type Options struct {
	// KnownHosts is the known_hosts file used to verify remote host keys.
	KnownHosts string
	// Identity is an optional private key file. The SSH agent is used when
	// it is empty.
	Identity string
	Timeout  time.Duration
}

// Loader reads source documents.
type Loader struct {
	opts Options
	// fetch reads a remote reference. Replaced in tests.
	fetch func(ctx context.Context, ref Ref, opts Options) ([]byte, error)
}

// NewLoader returns a Loader using opts for remote references.
func NewLoader(opts Options) *Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Loader{opts: opts, fetch: fetchSFTP}
}

// Load reads the whole document named by ref.
func (l *Loader) Load(ctx context.Context, ref string) (transform.SourceDocument, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return transform.SourceDocument{}, oops.In("source").Code("invalid_ref").Wrap(err)
	}
	errb := oops.In("source").With("source", r.String())

	if err := ctx.Err(); err != nil {
		return transform.SourceDocument{}, err
	}

	var data []byte
	if r.Remote {
		logging.Debugf("fetching %s over sftp", r.String())
		data, err = l.fetch(ctx, r, l.opts)
	} else {
		data, err = readLocal(r.Path)
	}
	if err != nil {
		return transform.SourceDocument{}, errb.Wrapf(err, "could not read source")
	}

	plain, c, err := Decompress(data)
	if err != nil {
		return transform.SourceDocument{}, errb.With("compression", string(c)).Wrapf(err, "could not decompress source")
	}
	if c != None {
		logging.Debugf("expanded %s source %s: %d -> %d bytes", c, r.String(), len(data), len(plain))
	}
	return transform.NewSourceDocument(ref, plain), nil
}

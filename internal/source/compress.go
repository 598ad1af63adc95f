// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies the container format detected on a source.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	XZ   Compression = "xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect reports the compression format of data by its magic bytes.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, xzMagic):
		return XZ
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// Decompress expands data if it carries a known container header and
// returns it unchanged otherwise. Expanded output is capped at MaxSize.
func Decompress(data []byte) ([]byte, Compression, error) {
	c := Detect(data)
	var (
		r   io.Reader
		err error
	)
	switch c {
	case None:
		return data, None, nil
	case Gzip:
		var gr *gzip.Reader
		gr, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			defer gr.Close()
			r = gr
		}
	case Zstd:
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(bytes.NewReader(data))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	case XZ:
		r, err = xz.NewReader(bytes.NewReader(data))
	}
	if err != nil {
		return nil, c, fmt.Errorf("open %s stream: %w", c, err)
	}
	out, err := readLimited(r, string(c)+" stream")
	if err != nil {
		return nil, c, fmt.Errorf("read %s stream: %w", c, err)
	}
	return out, c, nil
}

// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package source loads configuration exports into memory. A reference is
// either a local path or an sftp:// URL; compressed exports (gzip, zstd, xz)
// are expanded transparently.
package source

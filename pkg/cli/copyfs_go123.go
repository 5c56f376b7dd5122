/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

//go:build go1.23

package cli

import (
	"io/fs"
	"os"
)

// copyFS dispatches to os.CopyFS, which exists in the standard library from
// Go 1.23 on. Toolchains older than that build the backport in
// copyfs_compat.go instead.
func copyFS(dir string, fsys fs.FS) error {
	return os.CopyFS(dir, fsys)
}

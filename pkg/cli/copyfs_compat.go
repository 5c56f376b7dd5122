/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

//go:build !go1.23

package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var errInvalidPath = errors.New("invalid path")

// copyFS backports os.CopyFS for toolchains older than Go 1.23, where the
// function is not in the standard library. The body mirrors the upstream
// implementation (os/dir.go, go1.23): directories are created with mode
// 0o777 and files with 0o666 plus the source's execute bits (both before
// umask), existing destination files make it fail with fs.ErrExist, and
// non-regular files are rejected with fs.ErrInvalid.
func copyFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		fpath, err := localize(path)
		if err != nil {
			return err
		}
		newPath := joinPath(dir, fpath)
		if d.IsDir() {
			return os.MkdirAll(newPath, 0777)
		}

		if !d.Type().IsRegular() {
			return &os.PathError{Op: "CopyFS", Path: path, Err: os.ErrInvalid}
		}

		r, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()
		info, err := r.Stat()
		if err != nil {
			return err
		}
		w, err := os.OpenFile(newPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666|info.Mode()&0777)
		if err != nil {
			return err
		}

		if _, err := io.Copy(w, r); err != nil {
			w.Close()
			return &os.PathError{Op: "Copy", Path: newPath, Err: err}
		}
		return w.Close()
	})
}

// localize stands in for filepath.Localize (Go 1.23+): it validates the
// slash-separated fs path and converts it to an OS path.
func localize(path string) (string, error) {
	if !fs.ValidPath(path) || strings.IndexByte(path, 0) >= 0 {
		return "", errInvalidPath
	}
	return filepath.FromSlash(path), nil
}

// joinPath mirrors the unexported os.joinPath helper used by os.CopyFS.
func joinPath(dir, name string) string {
	if len(dir) > 0 && os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

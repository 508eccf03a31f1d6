// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists tells whether [path] names a regular file, not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// UserHomePath joins [elems] under the user home, or as a relative path if
// the home is unknown
func UserHomePath(elems ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(elems...)
	}
	return filepath.Join(append([]string{home}, elems...)...)
}

// ExpandHome replaces a leading ~ in [path] by the user home
func ExpandHome(path string) string {
	if path == "~" {
		return UserHomePath()
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return UserHomePath(rest)
	}
	return path
}

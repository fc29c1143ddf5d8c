// Package project locates the project root relative to the launcher binary.
//
// The launcher is installed one level below the crate root (conventionally
// in bin/), so the root is always the parent of the directory containing
// the executable. Resolution depends only on the executable path, never on
// the caller's working directory.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root returns the absolute path one directory level above the directory
// containing exePath. It fails if the resolved root does not exist or is
// not a directory.
func Root(exePath string) (string, error) {
	abs, err := filepath.Abs(exePath)
	if err != nil {
		return "", fmt.Errorf("resolve launcher path: %w", err)
	}
	// Follow symlinks so a linked binary still resolves the real tree.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	root := filepath.Dir(filepath.Dir(abs))
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("project root %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", root)
	}
	return root, nil
}

// SelfRoot resolves the root from the running executable's own location.
func SelfRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return Root(exe)
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootIsParentOfBinaryDir verifies the root is one level above the
// directory holding the executable.
func TestRootIsParentOfBinaryDir(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	exe := filepath.Join(binDir, "doclaunch")
	require.NoError(t, os.WriteFile(exe, []byte("stub"), 0o755))

	root, err := Root(exe)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, root)
}

// TestRootIgnoresCallerCwd verifies resolution is location-invariant with
// respect to the caller's working directory.
func TestRootIgnoresCallerCwd(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	exe := filepath.Join(binDir, "doclaunch")
	require.NoError(t, os.WriteFile(exe, []byte("stub"), 0o755))

	fromA, err := Root(exe)
	require.NoError(t, err)

	other := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(other))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	fromB, err := Root(exe)
	require.NoError(t, err)
	assert.Equal(t, fromA, fromB)
}

func TestRootMissingDirectory(t *testing.T) {
	_, err := Root(filepath.Join(t.TempDir(), "no", "such", "bin", "doclaunch"))
	assert.Error(t, err)
}

func TestRootParentIsFile(t *testing.T) {
	dir := t.TempDir()
	// Layout where the would-be root is a regular file.
	rootFile := filepath.Join(dir, "rootfile")
	require.NoError(t, os.WriteFile(rootFile, []byte("x"), 0o644))

	_, err := Root(filepath.Join(rootFile, "bin", "doclaunch"))
	assert.Error(t, err)
}

func TestSelfRoot(t *testing.T) {
	// The test binary lives in a temp dir whose parent always exists, so
	// SelfRoot should succeed and return a directory.
	root, err := SelfRoot()
	require.NoError(t, err)
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

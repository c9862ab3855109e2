package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBinary writes an executable shell script standing in for the sharp
// CLI.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sharp-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestSharpConverterWritesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.jpg")
	dst := filepath.Join(dir, "out.avif")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))

	// Copies the input (arg 2) to the output (arg 10), as sharp would.
	conv := &SharpConverter{Bin: stubBinary(t, `cp "$2" "${10}"`)}

	err := conv.Convert(context.Background(), src, dst, 50, 1000)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
	assert.NoFileExists(t, dst+".partial")
}

func TestSharpConverterFailureLeavesNoDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.jpg")
	dst := filepath.Join(dir, "out.avif")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))

	conv := &SharpConverter{Bin: stubBinary(t, `exit 1`)}

	err := conv.Convert(context.Background(), src, dst, 50, 1000)
	require.Error(t, err)
	assert.NoFileExists(t, dst)
	assert.NoFileExists(t, dst+".partial")
}

func TestSharpConverterPartialOutputIsRemovedOnFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.jpg")
	dst := filepath.Join(dir, "out.avif")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))

	// Writes a torn partial file and then dies.
	conv := &SharpConverter{Bin: stubBinary(t, `echo torn > "${10}"; exit 1`)}

	err := conv.Convert(context.Background(), src, dst, 50, 1000)
	require.Error(t, err)
	assert.NoFileExists(t, dst)
	assert.NoFileExists(t, dst+".partial")
}

func TestSharpConverterHonorsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.jpg")
	dst := filepath.Join(dir, "out.avif")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))

	conv := &SharpConverter{Bin: stubBinary(t, `sleep 30`)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := conv.Convert(ctx, src, dst, 50, 1000)
	require.Error(t, err)
	assert.NoFileExists(t, dst)
}

package rifffile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/riff/pkg/riff"
)

func writeWave(t *testing.T, path string, data []byte) {
	t.Helper()
	tree := riff.NewRIFF(riff.MustFourCC("WAVE"),
		riff.NewRawChunk(riff.MustFourCC("fmt "), []byte{1, 0, 2, 0}),
		riff.NewRawChunk(riff.MustFourCC("data"), data),
	)
	_, err := Create(path, tree)
	require.NoError(t, err)
}

func TestOpenAndReadPayload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWave(t, path, []byte{9, 8, 7})

	f, err := Open(path, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	assert.Equal(t, riff.MustFourCC("WAVE"), f.Root.ListType)
	require.Equal(t, 2, f.Root.Len())

	d, err := riff.FindDescriptor(f.Root, "data")
	require.NoError(t, err)
	got, err := d.(*riff.RawDescriptor).Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, got)

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, riff.TotalSize(uint64(f.Root.Size)), st.Size())
}

func TestRewriteInPlace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "edit.wav")
	writeWave(t, path, bytes.Repeat([]byte{0x11}, 1000))

	f, err := Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w := f.Root.Writable()
	w.Append(riff.NewList(riff.MustFourCC("INFO"),
		riff.NewRawChunk(riff.MustFourCC("INAM"), []byte("tone\x00")),
	))
	_, err = Create(path, w)
	require.NoError(t, err)

	g, err := Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = g.Close() }()

	require.Equal(t, 3, g.Root.Len())
	d, err := riff.FindDescriptor(g.Root, "data")
	require.NoError(t, err)
	got, err := d.(*riff.RawDescriptor).Data()
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x11}, 1000), got)

	name, err := riff.FindDescriptor(g.Root, `LIST-INFO\INAM`)
	require.NoError(t, err)
	assert.EqualValues(t, 5, name.ChunkHeader().Size)
}

func TestOpenRejectsNonRIFF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "junk.bin")
	require.NoError(t, os.WriteFile(path, []byte("JUNK\x00\x00\x00\x00"), 0o644))
	_, err := Open(path, nil)
	assert.True(t, errors.Is(err, riff.ErrNotRoot), "got %v", err)

	empty := filepath.Join(t.TempDir(), "empty.wav")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Open(empty, nil)
	assert.Error(t, err)
}

func TestCreateLeavesNoTempOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.wav")
	bad := riff.NewRIFF(riff.MustFourCC("WAVE"),
		riff.NewDeferredChunk(riff.MustFourCC("data"), riff.PayloadRef{Size: 4}),
	)
	_, err := Create(path, bad)
	require.ErrorIs(t, err, riff.ErrNoSource)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

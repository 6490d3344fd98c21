// Package rifffile opens RIFF files from disk and writes chunk trees back to disk.
package rifffile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samcharles93/riff/pkg/riff"
)

// File is a parsed RIFF file. Payloads of its descriptors are read from the
// file on demand, so the File must stay open while they are in use.
type File struct {
	Path string
	Root *riff.ListDescriptor

	src     io.ReaderAt
	f       *os.File
	data    []byte
	mmapped bool
}

// Open maps path read-only and parses its chunk tree. If mmap is unavailable
// the file is read with ReadAt instead. A nil factory means riff.BasicFactory.
func Open(path string, factory riff.Factory) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	rf := &File{Path: path}
	if data, err := mmapFile(f, st.Size()); err == nil {
		// The mapping outlives the descriptor.
		_ = f.Close()
		rf.data = data
		rf.mmapped = true
		rf.src = bytes.NewReader(data)
	} else {
		rf.f = f
		rf.src = f
	}

	root, err := riff.ParseRoot(rf.src, factory)
	if err != nil {
		_ = rf.Close()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	rf.Root = root
	return rf, nil
}

// Source returns the byte source the tree was parsed from.
func (f *File) Source() io.ReaderAt {
	return f.src
}

// Mapped reports whether the file is memory-mapped.
func (f *File) Mapped() bool {
	return f.mmapped
}

// Close releases the mapping or file handle. Descriptors of the file must not
// be read afterwards.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	var err error
	if f.mmapped && f.data != nil {
		err = munmap(f.data)
	}
	if f.f != nil {
		err = errors.Join(err, f.f.Close())
	}
	f.data = nil
	f.f = nil
	f.src = nil
	f.mmapped = false
	return err
}

// Create writes c to path. The tree is written to a temporary file in the same
// directory which is renamed over path once complete, so c may hold deferred
// payloads read from the file being replaced.
func Create(path string, c riff.Chunk) (int64, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	cleanup := func(err error) (int64, error) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return 0, err
	}

	bw := bufio.NewWriterSize(tmp, 1<<20)
	n, err := riff.Write(bw, c)
	if err != nil {
		return cleanup(err)
	}
	if err := bw.Flush(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}

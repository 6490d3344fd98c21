package riff

import (
	"fmt"
	"io"
)

// PayloadRef locates a chunk's data region in a source. It holds no bytes.
//
// The source must be the same byte sequence the chunk was parsed from and must
// not be modified while the reference is in use.
type PayloadRef struct {
	Source io.ReaderAt
	Offset int64
	Size   uint32
}

// Bytes reads the whole payload. Every call reads the source again.
func (r PayloadRef) Bytes() ([]byte, error) {
	if r.Source == nil {
		return nil, ErrNoSource
	}
	buf := make([]byte, r.Size)
	if err := readAtFull(r.Source, buf, r.Offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// Reader returns a reader over the payload for streaming large chunks.
func (r PayloadRef) Reader() *io.SectionReader {
	return io.NewSectionReader(r.Source, r.Offset, int64(r.Size))
}

// ReadData reads the payload of d from src. The pad byte is not read.
func ReadData(d *RawDescriptor, src io.ReaderAt) ([]byte, error) {
	ref := d.Ref
	ref.Source = src
	ref.Offset = d.DataOffset()
	ref.Size = d.Size
	return ref.Bytes()
}

func readAtFull(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("riff: read %d bytes at offset %d: %w", len(buf), off, err)
}

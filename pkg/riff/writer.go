package riff

import (
	"fmt"
	"io"
	"math"
)

// Write serializes c and its descendants to w and returns the number of bytes written.
func Write(w io.Writer, c Chunk) (int64, error) {
	return c.WriteTo(w)
}

func (c *ListChunk) WriteTo(w io.Writer) (int64, error) {
	cw := &chunkWriter{w: w}
	err := cw.write(c)
	return cw.n, err
}

func (c *RawChunk) WriteTo(w io.Writer) (int64, error) {
	cw := &chunkWriter{w: w}
	err := cw.write(c)
	return cw.n, err
}

// chunkWriter counts bytes written to w.
type chunkWriter struct {
	w   io.Writer
	n   int64
	hdr [HeaderSize]byte
}

func (cw *chunkWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func (cw *chunkWriter) write(c Chunk) error {
	size := c.Size()
	if size > math.MaxUint32 {
		return fmt.Errorf("%w: %q has %d bytes", ErrChunkTooLarge, c.ChunkID(), size)
	}
	encodeHeader(cw.hdr[:], c.ChunkID(), uint32(size))
	if _, err := cw.Write(cw.hdr[:]); err != nil {
		return err
	}

	switch c := c.(type) {
	case *ListChunk:
		if _, err := cw.Write(c.ListType[:]); err != nil {
			return err
		}
		for _, child := range c.children {
			if err := cw.write(child); err != nil {
				return err
			}
		}
	case *RawChunk:
		if err := cw.writePayload(c); err != nil {
			return err
		}
	}

	if Padding(uint32(size)) != 0 {
		// Pad bytes are always written as zero.
		if _, err := cw.Write([]byte{0}); err != nil {
			return err
		}
	}
	return nil
}

func (cw *chunkWriter) writePayload(c *RawChunk) error {
	if c.ref == nil {
		_, err := cw.Write(c.data)
		return err
	}
	if c.ref.Source == nil {
		return ErrNoSource
	}
	n, err := io.Copy(cw, c.ref.Reader())
	if err != nil {
		return err
	}
	if n != int64(c.ref.Size) {
		return fmt.Errorf("riff: copy %q payload: got %d of %d bytes: %w",
			c.Identifier, n, c.ref.Size, io.ErrUnexpectedEOF)
	}
	return nil
}

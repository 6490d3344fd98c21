package riff

import (
	"fmt"
	"io"
)

// Parse reads the chunk tree that starts at offset 0 of src.
// Header fields are read eagerly; raw payloads are skipped and can be fetched
// later through RawDescriptor.Data. A nil factory means BasicFactory.
func Parse(src io.ReaderAt, f Factory) (Descriptor, error) {
	return ParseAt(src, 0, f)
}

// ParseAt reads the chunk tree that starts at off.
func ParseAt(src io.ReaderAt, off int64, f Factory) (Descriptor, error) {
	if f == nil {
		f = BasicFactory{}
	}
	p := &parser{src: src, factory: f}
	d, _, err := p.parse(off, -1, 0)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ParseRoot is like Parse but requires the first chunk to be the RIFF root list.
// The identifier is checked before any children are read.
func ParseRoot(src io.ReaderAt, f Factory) (*ListDescriptor, error) {
	var hdr [HeaderSize]byte
	if err := readAtFull(src, hdr[:], 0); err != nil {
		return nil, err
	}
	if id, _, _ := decodeHeader(hdr[:]); !id.EqualFold(RootID) {
		return nil, fmt.Errorf("%w: got %q", ErrNotRoot, id)
	}
	d, err := Parse(src, f)
	if err != nil {
		return nil, err
	}
	root, ok := d.(*ListDescriptor)
	if !ok {
		return nil, fmt.Errorf("%w: factory did not return a list for %q", ErrNotRoot, d.ChunkHeader().ID)
	}
	return root, nil
}

// ParseReadSeeker parses a tree from a seekable stream. Lazy payload reads on
// the returned tree seek rs, so rs must stay open and must not be shared with
// concurrent readers.
func ParseReadSeeker(rs io.ReadSeeker, f Factory) (Descriptor, error) {
	return Parse(&readSeekerAt{rs: rs}, f)
}

type parser struct {
	src     io.ReaderAt
	factory Factory
	buf     [HeaderSize]byte
}

// parse reads the chunk at off and returns it along with the offset of the next
// sibling. A non-negative limit is the end of the parent's data region. depth
// is the number of lists enclosing the chunk.
func (p *parser) parse(off, limit int64, depth int) (Descriptor, int64, error) {
	if err := readAtFull(p.src, p.buf[:], off); err != nil {
		return nil, 0, err
	}
	id, size, _ := decodeHeader(p.buf[:])
	hdr := Header{ID: id, Size: size, Offset: off}
	dataEnd := hdr.DataOffset() + int64(size)
	if limit >= 0 && dataEnd > limit {
		return nil, 0, fmt.Errorf("%w: %q at offset %d ends at %d, past parent end %d",
			ErrCorruptChunk, id, off, dataEnd, limit)
	}
	next := dataEnd + int64(hdr.Padding())

	switch d := p.factory.Create(id).(type) {
	case *ListDescriptor:
		if d == nil {
			break
		}
		if depth >= MaxDepth {
			return nil, 0, fmt.Errorf("%w: list %q at offset %d nests deeper than %d lists",
				ErrCorruptChunk, id, off, MaxDepth)
		}
		d.Header = hdr
		if err := p.parseList(d, dataEnd, depth); err != nil {
			return nil, 0, err
		}
		return d, next, nil
	case *RawDescriptor:
		if d == nil {
			break
		}
		d.Header = hdr
		d.Ref = PayloadRef{Source: p.src, Offset: hdr.DataOffset(), Size: size}
		return d, next, nil
	}
	return nil, 0, fmt.Errorf("%w: chunk %q at offset %d", ErrUnknownDescriptor, id, off)
}

func (p *parser) parseList(d *ListDescriptor, dataEnd int64, depth int) error {
	if d.Size < ListTypeSize {
		return fmt.Errorf("%w: list %q at offset %d has size %d, too small for a list type",
			ErrCorruptChunk, d.ID, d.Offset, d.Size)
	}
	if err := readAtFull(p.src, d.ListType[:], d.DataOffset()); err != nil {
		return err
	}
	d.Children = nil
	cur := d.DataOffset() + ListTypeSize
	for cur < dataEnd {
		if dataEnd-cur < HeaderSize {
			return fmt.Errorf("%w: list %q at offset %d has %d trailing bytes, too few for a chunk header",
				ErrCorruptChunk, d.ID, d.Offset, dataEnd-cur)
		}
		child, next, err := p.parse(cur, dataEnd, depth+1)
		if err != nil {
			return err
		}
		d.Children = append(d.Children, child)
		cur = next
	}
	return nil
}

// readSeekerAt serves ReadAt by seeking the wrapped stream.
type readSeekerAt struct {
	rs io.ReadSeeker
}

func (r *readSeekerAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(r.rs, p)
}

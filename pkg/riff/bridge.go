package riff

import "fmt"

// ToWritable converts a parsed tree into an independent, editable chunk tree.
// List structure is copied eagerly; raw payloads stay in the source until the
// chunk is written or materialized.
func ToWritable(d Descriptor) (Chunk, error) {
	switch d := d.(type) {
	case *ListDescriptor:
		if d == nil {
			break
		}
		return d.Writable(), nil
	case *RawDescriptor:
		if d == nil {
			break
		}
		return d.Writable(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownDescriptor, d)
}

// Writable converts d and its descendants into a ListChunk.
func (d *ListDescriptor) Writable() *ListChunk {
	c := &ListChunk{
		Identifier: d.ID,
		ListType:   d.ListType,
		children:   make([]Chunk, 0, len(d.Children)),
	}
	for _, child := range d.Children {
		switch child := child.(type) {
		case *ListDescriptor:
			c.children = append(c.children, child.Writable())
		case *RawDescriptor:
			c.children = append(c.children, child.Writable())
		}
	}
	return c
}

// Writable returns a deferred RawChunk backed by d's payload reference.
func (d *RawDescriptor) Writable() *RawChunk {
	return NewDeferredChunk(d.ID, d.Ref)
}

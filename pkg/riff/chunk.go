package riff

import (
	"io"
	"iter"
	"slices"
)

// Chunk is a node of a writable chunk tree. Its size is always derived from its
// current content, so edits anywhere below a list show up in the list's size
// the next time it is written.
//
// The concrete type is either *ListChunk or *RawChunk.
type Chunk interface {
	ChunkID() FourCC
	// Size is the length of the data region, excluding header and pad byte.
	Size() uint64
	WriteTo(w io.Writer) (int64, error)
	chunk()
}

// ListChunk is an editable list chunk. It owns an ordered sequence of children.
// Index arguments out of range panic, as with slice indexing.
type ListChunk struct {
	Identifier FourCC
	ListType   FourCC
	children   []Chunk
}

// NewListChunk returns a list chunk with the given identifier and list type.
func NewListChunk(id, listType FourCC, children ...Chunk) *ListChunk {
	c := &ListChunk{Identifier: id, ListType: listType}
	c.Append(children...)
	return c
}

// NewRIFF returns a root chunk of the given form type, e.g. "WAVE" or "AVI ".
func NewRIFF(form FourCC, children ...Chunk) *ListChunk {
	return NewListChunk(RootID, form, children...)
}

// NewList returns a LIST chunk of the given list type.
func NewList(listType FourCC, children ...Chunk) *ListChunk {
	return NewListChunk(ListID, listType, children...)
}

func (c *ListChunk) ChunkID() FourCC { return c.Identifier }

// Size returns the list type plus the total size of every child.
func (c *ListChunk) Size() uint64 {
	size := uint64(ListTypeSize)
	for _, child := range c.children {
		size += TotalSize(child.Size())
	}
	return size
}

func (c *ListChunk) Len() int { return len(c.children) }

func (c *ListChunk) At(i int) Chunk { return c.children[i] }

func (c *ListChunk) Set(i int, child Chunk) {
	mustChunk(child)
	c.children[i] = child
}

// Insert places child at index i, shifting later children up. i may equal Len.
func (c *ListChunk) Insert(i int, child Chunk) {
	mustChunk(child)
	c.children = slices.Insert(c.children, i, child)
}

func (c *ListChunk) RemoveAt(i int) {
	c.children = slices.Delete(c.children, i, i+1)
}

func (c *ListChunk) Append(children ...Chunk) {
	for _, child := range children {
		mustChunk(child)
	}
	c.children = append(c.children, children...)
}

func (c *ListChunk) Clear() {
	clear(c.children)
	c.children = c.children[:0]
}

// IndexOf returns the index of child, compared by identity, or -1.
func (c *ListChunk) IndexOf(child Chunk) int {
	for i, ch := range c.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// Contains reports whether child is a direct child of c, compared by identity.
func (c *ListChunk) Contains(child Chunk) bool {
	return c.IndexOf(child) >= 0
}

// Remove deletes the first occurrence of child and reports whether it was found.
func (c *ListChunk) Remove(child Chunk) bool {
	i := c.IndexOf(child)
	if i < 0 {
		return false
	}
	c.RemoveAt(i)
	return true
}

// Children iterates over the direct children in order.
func (c *ListChunk) Children() iter.Seq2[int, Chunk] {
	return func(yield func(int, Chunk) bool) {
		for i, child := range c.children {
			if !yield(i, child) {
				return
			}
		}
	}
}

// RawChunk is a leaf chunk. Its payload is either an in-memory buffer or a
// deferred reference into the source it was parsed from.
type RawChunk struct {
	Identifier FourCC
	data       []byte
	ref        *PayloadRef
}

// NewRawChunk returns a leaf chunk holding data. data is not copied.
func NewRawChunk(id FourCC, data []byte) *RawChunk {
	return &RawChunk{Identifier: id, data: data}
}

// NewDeferredChunk returns a leaf chunk whose payload is read from ref when needed.
func NewDeferredChunk(id FourCC, ref PayloadRef) *RawChunk {
	return &RawChunk{Identifier: id, ref: &ref}
}

func (c *RawChunk) ChunkID() FourCC { return c.Identifier }

func (c *RawChunk) Size() uint64 {
	if c.ref != nil {
		return uint64(c.ref.Size)
	}
	return uint64(len(c.data))
}

// Deferred reports whether the payload still lives in the source.
func (c *RawChunk) Deferred() bool { return c.ref != nil }

// Bytes returns the payload. A deferred payload is read from its source on
// every call and is not retained; use Materialize to keep it in memory.
func (c *RawChunk) Bytes() ([]byte, error) {
	if c.ref != nil {
		return c.ref.Bytes()
	}
	return c.data, nil
}

// SetBytes replaces the payload. Any deferred reference is dropped.
func (c *RawChunk) SetBytes(data []byte) {
	c.data = data
	c.ref = nil
}

// Materialize reads a deferred payload into memory. After it returns nil the
// chunk no longer depends on its source.
func (c *RawChunk) Materialize() error {
	if c.ref == nil {
		return nil
	}
	data, err := c.ref.Bytes()
	if err != nil {
		return err
	}
	c.SetBytes(data)
	return nil
}

func (*ListChunk) chunk() {}
func (*RawChunk) chunk()  {}

func mustChunk(c Chunk) {
	if c == nil {
		panic("riff: nil chunk")
	}
}

package riff

// Descriptor is a parsed chunk. Payload bytes are never held by a descriptor;
// they are read on demand through the source the tree was parsed from.
//
// The concrete type is either *ListDescriptor or *RawDescriptor.
type Descriptor interface {
	ChunkHeader() Header
	descriptor()
}

// ListDescriptor is a parsed list chunk: RIFF, LIST or any identifier the
// Factory maps to a list.
type ListDescriptor struct {
	Header
	// ListType is the first four bytes of the data region, e.g. "WAVE" or "hdrl".
	ListType FourCC
	// Root is set for the outermost RIFF chunk.
	Root bool
	// Children are in file order.
	Children []Descriptor
}

// RawDescriptor is a parsed leaf chunk. Ref locates its payload in the source.
type RawDescriptor struct {
	Header
	Ref PayloadRef
}

func (*ListDescriptor) descriptor() {}
func (*RawDescriptor) descriptor()  {}

// Len returns the number of children.
func (d *ListDescriptor) Len() int { return len(d.Children) }

// Data reads the payload from the source captured at parse time.
func (d *RawDescriptor) Data() ([]byte, error) {
	return d.Ref.Bytes()
}

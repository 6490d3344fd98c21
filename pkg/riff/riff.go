// Package riff implements the chunk tree of RIFF-family containers (WAV, AVI, ...).
//
// A RIFF file is a sequence of chunks, each laid out as
//
//	identifier[4] size[4, little-endian] data[size] pad[size&1]
//
// List chunks (RIFF, LIST) start their data with a 4 byte list type followed by
// nested chunks. The package has a read side (Descriptor, parsed eagerly but
// reading payloads lazily) and a write side (Chunk, an editable tree that derives
// every size from its content at write time).
package riff

// Wire format constants must never change.
const (
	// IdentifierSize is the size of the identifier field in bytes.
	IdentifierSize = 4
	// LengthSize is the size of the size field in bytes.
	LengthSize = 4
	// HeaderSize is the size of a chunk header (identifier + size).
	HeaderSize = IdentifierSize + LengthSize
	// ListTypeSize is the size of the list type that opens a list chunk's data.
	ListTypeSize = 4
)

// MaxDepth is the deepest list nesting the parser accepts, counting the root.
// Parsed trees are therefore safe to Walk, bridge and write recursively.
const MaxDepth = 1000

var (
	// RootID identifies the outermost chunk of a RIFF file.
	RootID = FourCC{'R', 'I', 'F', 'F'}
	// ListID identifies a nested list chunk.
	ListID = FourCC{'L', 'I', 'S', 'T'}
)

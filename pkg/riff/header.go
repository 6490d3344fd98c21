package riff

import "encoding/binary"

// Header holds the framing fields shared by every parsed chunk.
type Header struct {
	// ID is the chunk identifier.
	ID FourCC
	// Size is the length of the data region. It excludes the header and the pad byte.
	Size uint32
	// Offset is the absolute position of the identifier field in the source.
	Offset int64
}

// ChunkHeader returns h. Types embedding Header inherit it.
func (h Header) ChunkHeader() Header { return h }

// Padding returns the number of pad bytes that follow the data region.
func (h Header) Padding() uint32 { return Padding(h.Size) }

// TotalSize returns the number of bytes the chunk occupies including header and pad.
func (h Header) TotalSize() uint64 { return TotalSize(uint64(h.Size)) }

// DataOffset returns the absolute position of the first data byte.
func (h Header) DataOffset() int64 { return h.Offset + HeaderSize }

// End returns the offset at which the next sibling chunk starts.
func (h Header) End() int64 { return h.Offset + int64(h.TotalSize()) }

// Padding returns the pad needed to bring size up to a 2 byte boundary (0 or 1).
func Padding(size uint32) uint32 {
	return size & 1
}

// TotalSize returns header + data + pad for a data region of the given size.
func TotalSize(size uint64) uint64 {
	return HeaderSize + size + size&1
}

func encodeHeader(dst []byte, id FourCC, size uint32) bool {
	if len(dst) < HeaderSize {
		return false
	}
	copy(dst[0:4], id[:])
	binary.LittleEndian.PutUint32(dst[4:8], size)
	return true
}

func decodeHeader(src []byte) (FourCC, uint32, bool) {
	var id FourCC
	if len(src) < HeaderSize {
		return id, 0, false
	}
	copy(id[:], src[0:4])
	return id, binary.LittleEndian.Uint32(src[4:8]), true
}

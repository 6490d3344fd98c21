package riff

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"
)

// rawBytes encodes a leaf chunk, including its pad byte.
func rawBytes(id string, data []byte) []byte {
	var b bytes.Buffer
	b.WriteString(id)
	_ = binary.Write(&b, binary.LittleEndian, uint32(len(data)))
	b.Write(data)
	if len(data)%2 == 1 {
		b.WriteByte(0)
	}
	return b.Bytes()
}

// listBytes encodes a list chunk around already encoded children.
func listBytes(id, listType string, children ...[]byte) []byte {
	body := []byte(listType)
	for _, c := range children {
		body = append(body, c...)
	}
	var b bytes.Buffer
	b.WriteString(id)
	_ = binary.Write(&b, binary.LittleEndian, uint32(len(body)))
	b.Write(body)
	return b.Bytes()
}

// waveBytes is the 36 byte RIFF/WAVE file with a "fmt " and a "data" chunk.
func waveBytes() []byte {
	return listBytes("RIFF", "WAVE",
		rawBytes("fmt ", []byte{0x01, 0x02, 0x03, 0x04}),
		rawBytes("data", []byte{0xAA, 0xBB, 0xCC, 0xDD}),
	)
}

type readCall struct {
	off int64
	n   int
}

// countingReaderAt records every ReadAt call made against r.
type countingReaderAt struct {
	r     io.ReaderAt
	mu    sync.Mutex
	calls []readCall
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	c.mu.Lock()
	c.calls = append(c.calls, readCall{off: off, n: len(p)})
	c.mu.Unlock()
	return c.r.ReadAt(p, off)
}

// touched reports whether any read overlapped [off, off+n).
func (c *countingReaderAt) touched(off int64, n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.calls {
		if call.off < off+int64(n) && off < call.off+int64(call.n) {
			return true
		}
	}
	return false
}

// nestedBytes encodes a RIFF root holding depth-1 nested empty LIST chunks,
// depth lists in total.
func nestedBytes(depth int) []byte {
	b := listBytes("LIST", "deep")
	for range depth - 2 {
		b = listBytes("LIST", "deep", b)
	}
	return listBytes("RIFF", "WAVE", b)
}

// Package inspect renders parsed chunk trees for people and programs.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/samcharles93/riff/pkg/riff"
)

// Node is the serializable view of one descriptor.
type Node struct {
	ID       string  `json:"id"`
	Path     string  `json:"path,omitempty"`
	ListType string  `json:"list_type,omitempty"`
	Offset   int64   `json:"offset"`
	Size     uint32  `json:"size"`
	Padding  uint32  `json:"padding,omitempty"`
	Data     []byte  `json:"data,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Options controls Build.
type Options struct {
	// IncludeData reads raw payloads into Node.Data.
	IncludeData bool
	// MaxData skips payloads larger than this many bytes. Zero means no limit.
	MaxData uint32
}

// Build converts the tree under root into Nodes. Payloads are only read when
// opts.IncludeData is set.
func Build(root riff.Descriptor, opts Options) (*Node, error) {
	var (
		top   *Node
		stack []*Node
	)
	err := riff.Walk(root, func(p riff.Path, d riff.Descriptor) error {
		h := d.ChunkHeader()
		n := &Node{
			ID:      h.ID.String(),
			Path:    p.String(),
			Offset:  h.Offset,
			Size:    h.Size,
			Padding: h.Padding(),
		}
		switch d := d.(type) {
		case *riff.ListDescriptor:
			n.ListType = d.ListType.String()
		case *riff.RawDescriptor:
			if opts.IncludeData && (opts.MaxData == 0 || d.Size <= opts.MaxData) {
				data, err := d.Data()
				if err != nil {
					return fmt.Errorf("read %s: %w", n.Path, err)
				}
				n.Data = data
			}
		}

		stack = stack[:len(p)]
		if len(p) == 0 {
			top = n
		} else {
			parent := stack[len(p)-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return top, nil
}

// WriteJSON encodes n as indented JSON.
func WriteJSON(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// Marshal encodes n as compact JSON.
func Marshal(n *Node) ([]byte, error) {
	return json.Marshal(n)
}

// WriteText prints one line per chunk, indented by depth:
//
//	RIFF WAVE  size=28 offset=0
//	  fmt   size=16 offset=12  path=fmt
func WriteText(w io.Writer, n *Node) error {
	return writeText(w, n, 0)
}

func writeText(w io.Writer, n *Node, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.ID)
	if n.ListType != "" {
		b.WriteByte(' ')
		b.WriteString(n.ListType)
	}
	fmt.Fprintf(&b, "  size=%d offset=%d", n.Size, n.Offset)
	if n.Path != "" {
		fmt.Fprintf(&b, "  path=%s", n.Path)
	}
	if n.Data != nil {
		fmt.Fprintf(&b, "  data=%s", preview(n.Data, 16))
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeText(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func preview(data []byte, limit int) string {
	if len(data) <= limit {
		return fmt.Sprintf("%x", data)
	}
	return fmt.Sprintf("%x...", data[:limit])
}

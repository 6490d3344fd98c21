package riff

import "fmt"

// navigator abstracts the two tree shapes so that path lookup is written once.
type navigator[T any] struct {
	children func(T) []T
	key      func(T) (id, listType FourCC, isList bool)
}

var chunkNav = navigator[Chunk]{
	children: func(c Chunk) []Chunk {
		if l, ok := c.(*ListChunk); ok {
			return l.children
		}
		return nil
	},
	key: func(c Chunk) (FourCC, FourCC, bool) {
		if l, ok := c.(*ListChunk); ok {
			return l.Identifier, l.ListType, true
		}
		return c.ChunkID(), FourCC{}, false
	},
}

var descriptorNav = navigator[Descriptor]{
	children: func(d Descriptor) []Descriptor {
		if l, ok := d.(*ListDescriptor); ok {
			return l.Children
		}
		return nil
	},
	key: func(d Descriptor) (FourCC, FourCC, bool) {
		if l, ok := d.(*ListDescriptor); ok {
			return l.ID, l.ListType, true
		}
		return d.ChunkHeader().ID, FourCC{}, false
	},
}

// child returns the index within n's children addressed by e, or -1.
func (nav navigator[T]) child(n T, e Element) int {
	seen := 0
	for i, c := range nav.children(n) {
		id, listType, isList := nav.key(c)
		if !e.matches(id, listType, isList) {
			continue
		}
		if seen == e.Index {
			return i
		}
		seen++
	}
	return -1
}

// locate walks p from root and returns the parent of the addressed node and the
// node's index within it.
func (nav navigator[T]) locate(root T, p Path) (T, int, error) {
	var zero T
	if len(p) == 0 {
		return zero, -1, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	parent := root
	for depth, e := range p {
		i := nav.child(parent, e)
		if i < 0 {
			return zero, -1, fmt.Errorf("%w: %s (in %s)", ErrChunkNotFound, e, p[:depth+1])
		}
		if depth == len(p)-1 {
			return parent, i, nil
		}
		parent = nav.children(parent)[i]
	}
	return zero, -1, nil // unreachable
}

func (nav navigator[T]) find(root T, p Path) (T, error) {
	parent, i, err := nav.locate(root, p)
	if err != nil {
		var zero T
		return zero, err
	}
	return nav.children(parent)[i], nil
}

// FindChunk returns the chunk addressed by path, relative to root.
func FindChunk(root Chunk, path string) (Chunk, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return chunkNav.find(root, p)
}

// FindParent returns the list containing the chunk addressed by path.
// A single element path has no parent within the path and fails with ErrNoParent.
func FindParent(root Chunk, path string) (*ListChunk, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	if len(p) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrNoParent, path)
	}
	parent, _, err := chunkNav.locate(root, p)
	if err != nil {
		return nil, err
	}
	return parent.(*ListChunk), nil
}

// LocateChunk returns the list holding the chunk addressed by path together with
// the chunk's index in it, which is what callers need to replace or remove it.
// Unlike FindParent, a single element path resolves to root itself.
func LocateChunk(root Chunk, path string) (*ListChunk, int, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, -1, err
	}
	parent, i, err := chunkNav.locate(root, p)
	if err != nil {
		return nil, -1, err
	}
	return parent.(*ListChunk), i, nil
}

// FindDescriptor returns the descriptor addressed by path, relative to root.
func FindDescriptor(root Descriptor, path string) (Descriptor, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return descriptorNav.find(root, p)
}

// FindParentDescriptor is FindParent for parsed trees.
func FindParentDescriptor(root Descriptor, path string) (*ListDescriptor, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	if len(p) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrNoParent, path)
	}
	parent, _, err := descriptorNav.locate(root, p)
	if err != nil {
		return nil, err
	}
	return parent.(*ListDescriptor), nil
}

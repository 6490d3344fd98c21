package riff

import "errors"

// WalkFunc is called for every node visited by Walk. path addresses d relative
// to the walk's root and is empty for the root itself. Returning SkipChildren
// from a list skips its descendants; any other error stops the walk.
type WalkFunc func(path Path, d Descriptor) error

// SkipChildren is used as a return value from WalkFunc.
var SkipChildren = skipChildren{}

type skipChildren struct{}

func (skipChildren) Error() string { return "skip children" }

// Walk visits root and its descendants depth-first in file order. The path
// passed for each node is the canonical path FindDescriptor resolves back to it,
// as long as no identifier or list type on the way contains a path separator
// ("\" or "|"). Such chunks are still visited, but their paths are not addressable.
func Walk(root Descriptor, fn WalkFunc) error {
	err := walk(nil, root, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(path Path, d Descriptor, fn WalkFunc) error {
	if err := fn(path, d); err != nil {
		return err
	}
	l, ok := d.(*ListDescriptor)
	if !ok {
		return nil
	}
	for i, child := range l.Children {
		e := elementFor(l.Children, i)
		err := walk(append(path[:len(path):len(path)], e), child, fn)
		if err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
	}
	return nil
}

// elementFor returns the element addressing siblings[i].
func elementFor(siblings []Descriptor, i int) Element {
	id, listType, isList := descriptorNav.key(siblings[i])
	e := Element{ID: id, ListType: listType, HasListType: isList}
	for _, s := range siblings[:i] {
		sid, slt, sl := descriptorNav.key(s)
		if e.matches(sid, slt, sl) {
			e.Index++
		}
	}
	return e
}

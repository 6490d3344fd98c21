package riff

import (
	"fmt"
	"strconv"
	"strings"
)

// Element addresses one child of a list: the Index-th child (0-based) whose
// identifier matches ID and, when HasListType is set, whose list type matches
// ListType. Matching is case-insensitive.
type Element struct {
	ID          FourCC
	ListType    FourCC
	HasListType bool
	Index       int
}

// Path is a sequence of elements walked from a root list downwards.
type Path []Element

// ParsePath parses the textual path syntax:
//
//	path    := ("\" | "|")? element (("\" | "|") element)*
//	element := id4 ("-" list4)? ("-" index)?
//
// For example `LIST-hdrl\LIST-strl-1\strh` is the "strh" chunk of the second
// "strl" list inside the "hdrl" list. Four characters after a "-" that are
// followed by "-", a separator or the end of the path are read as a list type,
// so "LIST-0001" names list type "0001", not index 1.
// Identifiers and list types containing "\" or "|" cannot be addressed.
func ParsePath(s string) (Path, error) {
	i := 0
	if i < len(s) && isPathSep(s[i]) {
		i++
	}
	if i == len(s) {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var p Path
	for {
		if len(s)-i < IdentifierSize {
			return nil, fmt.Errorf("%w: %q: need a 4 character identifier at offset %d", ErrInvalidPath, s, i)
		}
		var e Element
		copy(e.ID[:], s[i:i+IdentifierSize])
		i += IdentifierSize

		if i < len(s) && s[i] == '-' && isListTypeAt(s, i+1) {
			copy(e.ListType[:], s[i+1:i+1+ListTypeSize])
			e.HasListType = true
			i += 1 + ListTypeSize
		}
		if i < len(s) && s[i] == '-' {
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("%w: %q: expected list type or index at offset %d", ErrInvalidPath, s, i+1)
			}
			n, err := strconv.Atoi(s[i+1 : j])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: index at offset %d: %v", ErrInvalidPath, s, i+1, err)
			}
			e.Index = n
			i = j
		}
		p = append(p, e)

		if i == len(s) {
			return p, nil
		}
		if !isPathSep(s[i]) {
			return nil, fmt.Errorf("%w: %q: unexpected %q at offset %d", ErrInvalidPath, s, s[i], i)
		}
		i++
		if i == len(s) {
			return nil, fmt.Errorf("%w: %q: trailing separator", ErrInvalidPath, s)
		}
		if isPathSep(s[i]) {
			return nil, fmt.Errorf("%w: %q: empty element at offset %d", ErrInvalidPath, s, i)
		}
	}
}

// MustParsePath is like ParsePath but panics on a malformed path.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (e Element) String() string {
	var b strings.Builder
	b.Write(e.ID[:])
	if e.HasListType {
		b.WriteByte('-')
		b.Write(e.ListType[:])
	}
	if e.Index > 0 {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(e.Index))
	}
	return b.String()
}

// String renders p in canonical form, with "\" separators and zero indexes omitted.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, e := range p {
		parts[i] = e.String()
	}
	return strings.Join(parts, `\`)
}

func (e Element) matches(id, listType FourCC, isList bool) bool {
	if !id.EqualFold(e.ID) {
		return false
	}
	if e.HasListType {
		return isList && listType.EqualFold(e.ListType)
	}
	return true
}

func isPathSep(c byte) bool {
	return c == '\\' || c == '|'
}

func isListTypeAt(s string, i int) bool {
	end := i + ListTypeSize
	if end > len(s) {
		return false
	}
	return end == len(s) || s[end] == '-' || isPathSep(s[end])
}

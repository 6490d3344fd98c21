package riff

import "fmt"

// FourCC is a four character chunk code such as "RIFF", "LIST" or "fmt ".
type FourCC [4]byte

// ParseFourCC converts s into a FourCC. s must be exactly four bytes long.
func ParseFourCC(s string) (FourCC, error) {
	var id FourCC
	if len(s) != len(id) {
		return id, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	copy(id[:], s)
	return id, nil
}

// MustFourCC is like ParseFourCC but panics on a malformed identifier.
// It is intended for package-level constants and tests.
func MustFourCC(s string) FourCC {
	id, err := ParseFourCC(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id FourCC) String() string {
	return string(id[:])
}

// EqualFold reports whether id and other are equal under ASCII case folding.
func (id FourCC) EqualFold(other FourCC) bool {
	for i := range id {
		if lower(id[i]) != lower(other[i]) {
			return false
		}
	}
	return true
}

// MarshalText encodes the code as its four raw characters.
func (id FourCC) MarshalText() ([]byte, error) {
	return id[:], nil
}

// UnmarshalText decodes a four character code.
func (id *FourCC) UnmarshalText(b []byte) error {
	v, err := ParseFourCC(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

package riff

import "errors"

// Contract errors report misuse of the API by the caller.
var (
	ErrInvalidIdentifier = errors.New("riff: invalid chunk identifier")
	ErrInvalidPath       = errors.New("riff: invalid chunk path")
	ErrNoParent          = errors.New("riff: path has no parent element")
	ErrNotRoot           = errors.New("riff: source does not start with a RIFF chunk")
	ErrUnknownDescriptor = errors.New("riff: factory returned an unsupported descriptor")
)

// Structural errors report a malformed chunk tree.
var (
	ErrCorruptChunk  = errors.New("riff: corrupt chunk")
	ErrChunkTooLarge = errors.New("riff: chunk size exceeds 32 bits")
)

// ErrChunkNotFound is returned when a path addresses a chunk that does not exist.
var ErrChunkNotFound = errors.New("riff: chunk not found")

// ErrNoSource is returned when a deferred payload has no source to read from.
var ErrNoSource = errors.New("riff: payload has no source")

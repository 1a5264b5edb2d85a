package voprf

import "errors"

// These are the flat set of sentinel errors the protocol can fail with.
// Call sites wrap them with fmt.Errorf("...: %w", ErrX) for context; callers
// should compare against these with errors.Is, following the teacher's
// fmt.Errorf("...: %w", err) idiom throughout oprf.go and toprf.go.
var (
	// ErrInput is returned when an input exceeds 65535 bytes or is empty.
	// An info string that is too long is reported as ErrMetadata.
	ErrInput = errors.New("voprf: input out of bounds")
	// ErrMetadata is returned when the evaluation context derived from the
	// server key and metadata collapses to zero (see DESIGN.md's Open
	// Question log), or when metadata is too long to frame.
	ErrMetadata = errors.New("voprf: invalid evaluation metadata")
	// ErrSeed is returned when a key-derivation seed is empty or too long.
	ErrSeed = errors.New("voprf: seed out of bounds")
	// ErrDeserialization is returned when a wire encoding is malformed, or
	// decodes to a forbidden value (the identity element or zero scalar).
	ErrDeserialization = errors.New("voprf: deserialization failed")
	// ErrSizeError is returned when a persisted-state byte string has the
	// wrong length for its type.
	ErrSizeError = errors.New("voprf: wrong encoded length")
	// ErrProofVerification is returned when a DLEQ proof fails to verify.
	ErrProofVerification = errors.New("voprf: proof verification failed")
	// ErrBatch is returned when batched slices have mismatched lengths, are
	// empty, or exceed the protocol's 65535-element batch limit.
	ErrBatch = errors.New("voprf: invalid batch")
	// ErrHashToCurve is returned when expand_message_xmd or a map-to-curve
	// step fails.
	ErrHashToCurve = errors.New("voprf: hash to curve failed")
	// ErrPoint reports an invalid point. No function in this package returns
	// it: a received identity element is reported as ErrDeserialization.
	ErrPoint = errors.New("voprf: invalid point")
)

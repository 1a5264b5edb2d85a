// Package group abstracts the two prime-order elliptic curve groups used by
// the VOPRF ciphersuites (Ristretto255 and the P-256 prime subgroup) behind
// a single capability set: hash-to-curve, hash-to-scalar, and element/scalar
// codecs. Callers outside this package never see curve-specific types.
package group

import (
	"errors"
	"io"
)

// ErrHashToCurve is returned when expand_message_xmd or a map-to-curve step
// fails, generally because of an oversized length argument. An oversized DST
// is hashed down rather than rejected.
var ErrHashToCurve = errors.New("group: hash to curve failed")

// ErrPoint reports an invalid curve point. No function in this package
// returns it: a hash-to-curve point that fails to decode is reported as
// ErrHashToCurve, and a received encoding that fails to decode as
// ErrDeserialization.
var ErrPoint = errors.New("group: invalid point")

// ErrDeserialization is returned by Deserialize{Scalar,Element} when the
// input is malformed, is the identity element, or is the zero scalar.
var ErrDeserialization = errors.New("group: deserialization failed")

// Scalar is an element of a group's scalar field. Implementations are
// mutable value holders; arithmetic methods return freshly allocated
// results rather than mutating the receiver, so callers may freely retain
// earlier values.
type Scalar interface {
	// Bytes returns the fixed-width encoding used on the wire for this group.
	Bytes() []byte
	// IsZero reports whether the scalar is the additive identity.
	IsZero() bool
	// Equal reports whether two scalars are equal, in constant time.
	Equal(Scalar) bool
	Add(Scalar) Scalar
	Subtract(Scalar) Scalar
	Multiply(Scalar) Scalar
	// Invert returns the multiplicative inverse, or the zero scalar if the
	// receiver is zero.
	Invert() Scalar
}

// Zeroizer is implemented by Scalar and Element values that hold secret
// material and can overwrite it in place. Not every Element needs this
// (public values don't), but every Scalar implementation here provides it.
type Zeroizer interface {
	Zeroize()
}

// Element is a point of a prime-order group.
type Element interface {
	// Bytes returns the fixed-width encoding used on the wire for this group.
	Bytes() []byte
	// IsIdentity reports whether the element is the group's neutral element.
	IsIdentity() bool
	Equal(Element) bool
	Add(Element) Element
	ScalarMult(Scalar) Element
}

// Group is the capability set a VOPRF ciphersuite's elliptic curve group
// must provide. Two implementations exist: Ristretto255 and P256.
type Group interface {
	// ElemLen is the size in bytes of an encoded element.
	ElemLen() int
	// ScalarLen is the size in bytes of an encoded scalar.
	ScalarLen() int

	// RandomScalar samples a uniformly random nonzero scalar.
	RandomScalar(rand io.Reader) (Scalar, error)
	// ZeroScalar returns the additive identity of the scalar field.
	ZeroScalar() Scalar

	// DeserializeScalar decodes a fixed-width scalar encoding. It rejects
	// the zero scalar with ErrDeserialization.
	DeserializeScalar(b []byte) (Scalar, error)
	// SerializeScalar encodes a scalar to its fixed-width wire form.
	SerializeScalar(s Scalar) []byte

	// DeserializeElement decodes a fixed-width element encoding. It rejects
	// the identity element and invalid encodings with ErrDeserialization.
	DeserializeElement(b []byte) (Element, error)
	// SerializeElement encodes an element to its fixed-width wire form.
	SerializeElement(e Element) []byte

	// Base returns the group's canonical generator.
	Base() Element
	// Identity returns the group's neutral element.
	Identity() Element

	// HashToCurve maps msg to a uniformly-distributed curve point, using dst
	// as the RFC 9380 domain separation tag.
	HashToCurve(msg, dst []byte) (Element, error)
	// HashToScalar maps the concatenation of inputs to a uniformly
	// distributed scalar, using dst as the domain separation tag.
	HashToScalar(inputs [][]byte, dst []byte) (Scalar, error)
}

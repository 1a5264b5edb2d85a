// Package wire provides the domain-separation and framing helpers shared by
// the voprf protocol state machine: the draft-irtf-cfrg-voprf-08 context
// string, the eight DST prefix builders built on it, and length-prefixed
// encoding.
package wire

import (
	"encoding/binary"
	"errors"
)

// ErrTooLarge is returned by I2OSP2 when a value does not fit in two bytes.
var ErrTooLarge = errors.New("wire: value exceeds 65535 and cannot be I2OSP(.,2)-encoded")

// I2OSP2 big-endian-encodes n into exactly two bytes, failing if n does not
// fit (n must be in [0, 65535]).
func I2OSP2(n int) ([]byte, error) {
	if n < 0 || n > 0xffff {
		return nil, ErrTooLarge
	}
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(n))
	return b, nil
}

// DST prefixes from draft-irtf-cfrg-voprf-08 Section 4.
const (
	strFinalize  = "Finalize-"
	strSeed      = "Seed-"
	strContext   = "Context-"
	strComposite = "Composite-"
	strChallenge = "Challenge-"
	strVOPRF     = "VOPRF08-"
	strHashToGrp = "HashToGroup-"
	strHashToScl = "HashToScalar-"
	strDeriveKey = "DeriveKeyPair-"
)

// ContextString builds the 11-byte context string "VOPRF08-" || mode ||
// I2OSP(suiteID, 2), which every domain separation tag in the protocol is
// built from.
func ContextString(suiteID uint16, mode byte) []byte {
	cs := make([]byte, 0, len(strVOPRF)+1+2)
	cs = append(cs, strVOPRF...)
	cs = append(cs, mode)
	cs = append(cs, byte(suiteID>>8), byte(suiteID))
	return cs
}

func dst(prefix string, contextString []byte) []byte {
	d := make([]byte, 0, len(prefix)+len(contextString))
	d = append(d, prefix...)
	d = append(d, contextString...)
	return d
}

// HashToGroupDST returns "HashToGroup-" || context_string.
func HashToGroupDST(contextString []byte) []byte { return dst(strHashToGrp, contextString) }

// HashToScalarDST returns "HashToScalar-" || context_string.
func HashToScalarDST(contextString []byte) []byte { return dst(strHashToScl, contextString) }

// DeriveKeyPairDST returns "DeriveKeyPair-" || context_string.
func DeriveKeyPairDST(contextString []byte) []byte { return dst(strDeriveKey, contextString) }

// FinalizeDST returns "Finalize-" || context_string.
func FinalizeDST(contextString []byte) []byte { return dst(strFinalize, contextString) }

// SeedDST returns "Seed-" || context_string.
func SeedDST(contextString []byte) []byte { return dst(strSeed, contextString) }

// ContextDST returns "Context-" || context_string. This is not a hash DST:
// it prefixes the metadata/info framing inside the evaluation context.
func ContextDST(contextString []byte) []byte { return dst(strContext, contextString) }

// CompositeDST returns "Composite-" || context_string.
func CompositeDST(contextString []byte) []byte { return dst(strComposite, contextString) }

// ChallengeDST returns "Challenge-" || context_string.
func ChallengeDST(contextString []byte) []byte { return dst(strChallenge, contextString) }

// Concat joins byte slices without any framing, used to assemble hash
// preimages from pre-length-prefixed parts.
func Concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// LengthPrefixed returns I2OSP(len(b), 2) || b, the framing used throughout
// the protocol for variable-length fields (input, info, DSTs).
func LengthPrefixed(b []byte) ([]byte, error) {
	l, err := I2OSP2(len(b))
	if err != nil {
		return nil, err
	}
	return Concat(l, b), nil
}

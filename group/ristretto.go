package group

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"io"

	"github.com/gtank/ristretto255"
)

// ristrettoOutputBytes and ristrettoBlockSize are SHA-512's expand_message_xmd
// parameters (b_in_bytes and r_in_bytes), following the teacher's
// sha512OutputBytes/sha512BlockSize constants.
const (
	ristrettoOutputBytes = 64
	ristrettoBlockSize   = 128
	ristrettoHashBytes   = 64 // L for hash_to_curve and hash_to_scalar, per RFC 9380 suite Ristretto255_XMD:SHA-512_R255MAP_RO_
)

type ristrettoScalar struct{ s *ristretto255.Scalar }

type ristrettoElement struct{ e *ristretto255.Element }

// Ristretto255 is the Ristretto255-SHA512 ciphersuite's Group, grounded on
// the teacher's oprf.hashToGroup / toprf scalar and element handling.
type Ristretto255 struct{}

func (Ristretto255) ElemLen() int   { return 32 }
func (Ristretto255) ScalarLen() int { return 32 }

func (Ristretto255) RandomScalar(rnd io.Reader) (Scalar, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	// random_nonzero_scalar: sample 64 uniform bytes, reduce, retry on zero,
	// mirroring original_source/src/group/ristretto.rs's rejection loop.
	for {
		var buf [64]byte
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}
		s := ristretto255.NewScalar()
		s.FromUniformBytes(buf[:])
		if s.Equal(ristretto255.NewScalar()) != 1 {
			return ristrettoScalar{s}, nil
		}
	}
}

func (Ristretto255) ZeroScalar() Scalar {
	return ristrettoScalar{ristretto255.NewScalar()}
}

func (Ristretto255) DeserializeScalar(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, ErrDeserialization
	}
	s := ristretto255.NewScalar()
	if err := s.Decode(b); err != nil {
		return nil, ErrDeserialization
	}
	if s.Equal(ristretto255.NewScalar()) == 1 {
		return nil, ErrDeserialization
	}
	return ristrettoScalar{s}, nil
}

func (Ristretto255) SerializeScalar(s Scalar) []byte {
	return s.(ristrettoScalar).s.Encode(nil)
}

func (Ristretto255) DeserializeElement(b []byte) (Element, error) {
	if len(b) != 32 {
		return nil, ErrDeserialization
	}
	e := ristretto255.NewElement()
	if err := e.Decode(b); err != nil {
		return nil, ErrDeserialization
	}
	if e.Equal(ristretto255.NewElement()) == 1 {
		return nil, ErrDeserialization
	}
	return ristrettoElement{e}, nil
}

func (Ristretto255) SerializeElement(e Element) []byte {
	return e.(ristrettoElement).e.Encode(nil)
}

func (Ristretto255) Base() Element {
	return ristrettoElement{ristretto255.NewGeneratorElement()}
}

func (Ristretto255) Identity() Element {
	return ristrettoElement{ristretto255.NewElement()}
}

func (Ristretto255) HashToCurve(msg, dst []byte) (Element, error) {
	uniform, err := expandMessageXMD(sha512.New, ristrettoOutputBytes, ristrettoBlockSize, msg, dst, ristrettoHashBytes)
	if err != nil {
		return nil, err
	}
	e := ristretto255.NewElement()
	e.FromUniformBytes(uniform)
	return ristrettoElement{e}, nil
}

func (Ristretto255) HashToScalar(inputs [][]byte, dst []byte) (Scalar, error) {
	var msg []byte
	for _, in := range inputs {
		msg = append(msg, in...)
	}
	uniform, err := expandMessageXMD(sha512.New, ristrettoOutputBytes, ristrettoBlockSize, msg, dst, ristrettoHashBytes)
	if err != nil {
		return nil, err
	}
	s := ristretto255.NewScalar()
	s.FromUniformBytes(uniform)
	return ristrettoScalar{s}, nil
}

func (s ristrettoScalar) Bytes() []byte { return s.s.Encode(nil) }

func (s ristrettoScalar) IsZero() bool {
	return s.s.Equal(ristretto255.NewScalar()) == 1
}

func (s ristrettoScalar) Equal(other Scalar) bool {
	o := other.(ristrettoScalar)
	return subtle.ConstantTimeCompare(s.s.Encode(nil), o.s.Encode(nil)) == 1
}

func (s ristrettoScalar) Add(other Scalar) Scalar {
	o := other.(ristrettoScalar)
	r := ristretto255.NewScalar()
	r.Add(s.s, o.s)
	return ristrettoScalar{r}
}

// Subtract computes s - other. gtank/ristretto255's Scalar.Subtract(a, b)
// wraps filippo.io/edwards25519's Scalar.Subtract, which sets the receiver
// to a - b, so the operands are passed in that order here.
func (s ristrettoScalar) Subtract(other Scalar) Scalar {
	o := other.(ristrettoScalar)
	r := ristretto255.NewScalar()
	r.Subtract(s.s, o.s)
	return ristrettoScalar{r}
}

func (s ristrettoScalar) Multiply(other Scalar) Scalar {
	o := other.(ristrettoScalar)
	r := ristretto255.NewScalar()
	r.Multiply(s.s, o.s)
	return ristrettoScalar{r}
}

func (s ristrettoScalar) Invert() Scalar {
	r := ristretto255.NewScalar()
	r.Invert(s.s)
	return ristrettoScalar{r}
}

// Zeroize overwrites the scalar's backing storage in place by decoding the
// all-zero encoding over it, the same best-effort erasure the teacher's
// backkem-matter package performs with a hand-rolled zero loop: Go's
// garbage collector may have already copied earlier representations, so
// this is hygiene, not a hardware guarantee.
func (s ristrettoScalar) Zeroize() {
	var zero [32]byte
	_ = s.s.Decode(zero[:])
}

func (e ristrettoElement) Bytes() []byte { return e.e.Encode(nil) }

func (e ristrettoElement) IsIdentity() bool {
	return e.e.Equal(ristretto255.NewElement()) == 1
}

func (e ristrettoElement) Equal(other Element) bool {
	o := other.(ristrettoElement)
	return subtle.ConstantTimeCompare(e.e.Encode(nil), o.e.Encode(nil)) == 1
}

func (e ristrettoElement) Add(other Element) Element {
	o := other.(ristrettoElement)
	r := ristretto255.NewElement()
	r.Add(e.e, o.e)
	return ristrettoElement{r}
}

func (e ristrettoElement) ScalarMult(s Scalar) Element {
	sc := s.(ristrettoScalar)
	r := ristretto255.NewElement()
	r.ScalarMult(sc.s, e.e)
	return ristrettoElement{r}
}

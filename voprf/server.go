package voprf

import (
	"fmt"
	"io"

	"github.com/wurp/go-voprf/group"
	"github.com/wurp/go-voprf/wire"
)

// deriveKeyPair implements DeriveKeyPair: a server's private (and, for
// Verifiable mode, public) key deterministically from a seed, following
// original_source/src/voprf.rs's new_from_seed (sk = hash_to_scalar([seed],
// mode)). This document's expansion makes the DST explicit as
// "DeriveKeyPair-" || context_string, which spec.md leaves implicit.
func deriveKeyPair(cs CipherSuite, seed, info []byte, mode Mode) (group.Scalar, error) {
	if len(seed) == 0 || len(seed) > 65535 {
		return nil, ErrSeed
	}
	infoLen, err := wire.I2OSP2(len(info))
	if err != nil {
		return nil, fmt.Errorf("voprf: derive key pair: %w", ErrMetadata)
	}
	dst := wire.DeriveKeyPairDST(cs.contextString(mode))
	sk, err := cs.Group.HashToScalar([][]byte{seed, infoLen, info}, dst)
	if err != nil {
		return nil, fmt.Errorf("voprf: derive key pair: %w", ErrHashToCurve)
	}
	if sk.IsZero() {
		return nil, ErrSeed
	}
	return sk, nil
}

// maxInfoLen is the largest metadata length the protocol allows: 65535
// (the I2OSP(.,2) ceiling) minus the 21 bytes of fixed framing ("Context-"
// is 8 bytes, plus the 11-byte context string, plus the 2-byte length
// prefix on info itself) that must fit alongside it in the hashed preimage,
// per spec §4.4 step 1 / §7.
const maxInfoLen = 65535 - 21

// evaluationContext implements the "Context-" framing shared by Evaluate in
// both modes: m = hash_to_scalar("Context-"||context_string||I2OSP(len(info),2)||info,
// "HashToScalar-"||context_string), t = sk + m, rejected if zero (see DESIGN.md's Open Question log: the
// original Rust source allows t = 0 through, this hardens it).
func evaluationContext(cs CipherSuite, sk group.Scalar, info []byte, mode Mode) (group.Scalar, error) {
	if len(info) > maxInfoLen {
		return nil, ErrMetadata
	}
	ctx := cs.contextString(mode)
	contextBytes := wire.ContextDST(ctx)
	infoLen, err := wire.I2OSP2(len(info))
	if err != nil {
		return nil, fmt.Errorf("voprf: evaluate: %w", ErrMetadata)
	}
	m, err := cs.Group.HashToScalar([][]byte{contextBytes, infoLen, info}, wire.HashToScalarDST(ctx))
	if err != nil {
		return nil, fmt.Errorf("voprf: evaluate: %w", ErrHashToCurve)
	}
	t := sk.Add(m)
	if t.IsZero() {
		return nil, ErrMetadata
	}
	return t, nil
}

// NonVerifiableServer holds a Base mode server's private key.
type NonVerifiableServer struct {
	sk group.Scalar
}

// NewNonVerifiableServer generates a fresh random private key.
func NewNonVerifiableServer(cs CipherSuite, rnd io.Reader) (*NonVerifiableServer, error) {
	sk, err := cs.Group.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	return &NonVerifiableServer{sk: sk}, nil
}

// NewNonVerifiableServerWithKey loads a server from a previously generated
// private key.
func NewNonVerifiableServerWithKey(cs CipherSuite, key []byte) (*NonVerifiableServer, error) {
	sk, err := cs.Group.DeserializeScalar(key)
	if err != nil {
		return nil, fmt.Errorf("voprf: load server key: %w", ErrDeserialization)
	}
	return &NonVerifiableServer{sk: sk}, nil
}

// NewNonVerifiableServerFromSeed deterministically derives a server's
// private key from a seed, per DeriveKeyPair.
func NewNonVerifiableServerFromSeed(cs CipherSuite, seed, info []byte) (*NonVerifiableServer, error) {
	sk, err := deriveKeyPair(cs, seed, info, ModeBase)
	if err != nil {
		return nil, err
	}
	return &NonVerifiableServer{sk: sk}, nil
}

// Evaluate computes the server's share of the OPRF for a single blinded
// element.
func (s *NonVerifiableServer) Evaluate(cs CipherSuite, blinded *BlindedElement, info []byte) (*EvaluationElement, error) {
	t, err := evaluationContext(cs, s.sk, info, ModeBase)
	if err != nil {
		return nil, err
	}
	z := blinded.value.ScalarMult(t.Invert())
	return &EvaluationElement{value: z}, nil
}

// BatchEvaluate evaluates every blinded element under the same key and
// metadata. Base mode has no proof to batch, but sharing one inverted
// scalar across the batch is still worth doing.
func (s *NonVerifiableServer) BatchEvaluate(cs CipherSuite, blindedElements []*BlindedElement, info []byte) ([]*EvaluationElement, error) {
	evaluationElements, _, _, err := batchEvaluatePrepare(cs, s.sk, blindedElements, info, ModeBase)
	return evaluationElements, err
}

// SerializeKey encodes the server's private key for storage.
func (s *NonVerifiableServer) SerializeKey(cs CipherSuite) []byte {
	return cs.Group.SerializeScalar(s.sk)
}

// Zeroize overwrites the server's private key.
func (s *NonVerifiableServer) Zeroize() {
	zeroizeScalar(&s.sk)
}

// VerifiableServer holds a Verifiable mode server's key pair.
type VerifiableServer struct {
	sk group.Scalar
	pk group.Element
}

// NewVerifiableServer generates a fresh random key pair.
func NewVerifiableServer(cs CipherSuite, rnd io.Reader) (*VerifiableServer, error) {
	sk, err := cs.Group.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	pk := cs.Group.Base().ScalarMult(sk)
	return &VerifiableServer{sk: sk, pk: pk}, nil
}

// NewVerifiableServerWithKey loads a server from a previously generated
// private key, recomputing the matching public key.
func NewVerifiableServerWithKey(cs CipherSuite, key []byte) (*VerifiableServer, error) {
	sk, err := cs.Group.DeserializeScalar(key)
	if err != nil {
		return nil, fmt.Errorf("voprf: load server key: %w", ErrDeserialization)
	}
	pk := cs.Group.Base().ScalarMult(sk)
	return &VerifiableServer{sk: sk, pk: pk}, nil
}

// NewVerifiableServerFromSeed deterministically derives a key pair from a seed.
func NewVerifiableServerFromSeed(cs CipherSuite, seed, info []byte) (*VerifiableServer, error) {
	sk, err := deriveKeyPair(cs, seed, info, ModeVerifiable)
	if err != nil {
		return nil, err
	}
	pk := cs.Group.Base().ScalarMult(sk)
	return &VerifiableServer{sk: sk, pk: pk}, nil
}

// PublicKey returns the server's public key, to be distributed to clients.
func (s *VerifiableServer) PublicKey() group.Element {
	return s.pk
}

// Evaluate computes the server's share of the OPRF for a single blinded
// element and attaches a DLEQ proof binding it to the server's public key
// and the evaluation's metadata.
func (s *VerifiableServer) Evaluate(cs CipherSuite, rnd io.Reader, blinded *BlindedElement, info []byte) (*EvaluationElement, *Proof, error) {
	evals, proof, err := BatchEvaluateVerifiable(cs, rnd, s, []*BlindedElement{blinded}, info)
	if err != nil {
		return nil, nil, err
	}
	return evals[0], proof, nil
}

// BatchEvaluateVerifiable evaluates every blinded element under the same
// key and metadata and attaches a single batched proof covering all of
// them, following the two-phase prepare/finish split
// original_source/src/voprf.rs uses internally (batch_evaluate_prepare /
// batch_evaluate_finish) so that a lazy per-element iterator in the source
// language becomes one eager pass here.
//
// Per batch_evaluate_finish (voprf.rs:684-695), the proof is generated with
// exponent t = sk + m (not sk alone) and public element u = g*t (not the
// server's long-term public key pk) — the client verifies against that same
// u, reconstructed from pk and the metadata-derived m (see
// BatchFinalizeVerifiable). The composite slices are evaluation-elements-
// then-blinded-elements: D_i = C_i^t holds for C_i = evaluation element,
// D_i = blinded element, since evaluation_i = blinded_i^(1/t).
func BatchEvaluateVerifiable(cs CipherSuite, rnd io.Reader, s *VerifiableServer, blindedElements []*BlindedElement, info []byte) ([]*EvaluationElement, *Proof, error) {
	evaluationElements, blindedValues, t, err := batchEvaluatePrepare(cs, s.sk, blindedElements, info, ModeVerifiable)
	if err != nil {
		return nil, nil, err
	}

	evaluatedValues := make([]group.Element, len(evaluationElements))
	for i, e := range evaluationElements {
		evaluatedValues[i] = e.value
	}

	g := cs.Group.Base()
	u := g.ScalarMult(t)
	proof, err := generateProof(cs, rnd, t, g, u, evaluatedValues, blindedValues)
	if err != nil {
		return nil, nil, err
	}
	return evaluationElements, proof, nil
}

// batchEvaluatePrepare implements BatchEvaluatePrepare: it computes the
// shared evaluation context scalar once, inverts it once, and scales every
// blinded element by the inverse. It also returns the context scalar itself
// (not just its inverse) since Verifiable mode's proof is generated with
// that scalar as its exponent.
func batchEvaluatePrepare(cs CipherSuite, sk group.Scalar, blindedElements []*BlindedElement, info []byte, mode Mode) ([]*EvaluationElement, []group.Element, group.Scalar, error) {
	if len(blindedElements) == 0 || len(blindedElements) > 65535 {
		return nil, nil, nil, ErrBatch
	}
	t, err := evaluationContext(cs, sk, info, mode)
	if err != nil {
		return nil, nil, nil, err
	}
	tInv := t.Invert()

	evaluationElements := make([]*EvaluationElement, len(blindedElements))
	blindedValues := make([]group.Element, len(blindedElements))
	for i, b := range blindedElements {
		blindedValues[i] = b.value
		evaluationElements[i] = &EvaluationElement{value: b.value.ScalarMult(tInv)}
	}
	return evaluationElements, blindedValues, t, nil
}

// SerializeKey encodes the server's key pair for storage.
func (s *VerifiableServer) SerializeKey(cs CipherSuite) []byte {
	return wire.Concat2(cs.Group.SerializeScalar(s.sk), cs.Group.SerializeElement(s.pk))
}

// Zeroize overwrites the server's private key. The public key is not secret
// and is left intact.
func (s *VerifiableServer) Zeroize() {
	zeroizeScalar(&s.sk)
}

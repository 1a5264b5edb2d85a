package voprf

import (
	"fmt"
	"io"

	"github.com/wurp/go-voprf/group"
	"github.com/wurp/go-voprf/wire"
)

// Proof is a batched Chaum-Pedersen (DLEQ) proof that the same scalar was
// used as the exponent across every blinded/evaluated element pair it
// covers, and that it matches the server's public key.
type Proof struct {
	C group.Scalar
	S group.Scalar
}

// computeComposites implements compute_composites from
// draft-irtf-cfrg-voprf-08 Section 2.2.1. When k is non-nil (the prover's
// side), z is derived as m*k instead of the per-element weighted sum,
// matching original_source/src/voprf.rs's compute_composites.
func computeComposites(cs CipherSuite, k *group.Scalar, b group.Element, cM, dM []group.Element) (m, z group.Element, err error) {
	if len(cM) != len(dM) || len(cM) == 0 || len(cM) > 65535 {
		return nil, nil, ErrBatch
	}

	ctxV := cs.contextString(ModeVerifiable)
	elemLen, err := wire.I2OSP2(cs.Group.ElemLen())
	if err != nil {
		return nil, nil, err
	}

	seedDST := wire.SeedDST(ctxV)
	seedDSTLen, err := wire.I2OSP2(len(seedDST))
	if err != nil {
		return nil, nil, err
	}

	h := cs.Hash()
	h.Write(elemLen)
	h.Write(cs.Group.SerializeElement(b))
	h.Write(seedDSTLen)
	h.Write(seedDST)
	seed := h.Sum(nil)
	seedLen, err := wire.I2OSP2(len(seed))
	if err != nil {
		return nil, nil, err
	}

	compositeDST := wire.CompositeDST(ctxV)
	compositeDSTLen, err := wire.I2OSP2(len(compositeDST))
	if err != nil {
		return nil, nil, err
	}
	h2sDST := wire.HashToScalarDST(ctxV)

	m = cs.Group.Identity()
	z = cs.Group.Identity()
	for i := range cM {
		iBytes, err := wire.I2OSP2(i)
		if err != nil {
			return nil, nil, ErrBatch
		}
		parts := [][]byte{
			seedLen, seed, iBytes,
			elemLen, cs.Group.SerializeElement(cM[i]),
			elemLen, cs.Group.SerializeElement(dM[i]),
			compositeDSTLen, compositeDST,
		}
		di, err := cs.Group.HashToScalar(parts, h2sDST)
		if err != nil {
			return nil, nil, fmt.Errorf("voprf: compute composites: %w", ErrHashToCurve)
		}
		m = m.Add(cM[i].ScalarMult(di))
		if k == nil {
			z = z.Add(dM[i].ScalarMult(di))
		}
	}
	if k != nil {
		z = m.ScalarMult(*k)
	}
	return m, z, nil
}

// challengeTranscript builds the length-prefixed preimage shared by
// generateProof and verifyProof, differing only in t2/t3.
func challengeTranscript(cs CipherSuite, b, m, z, t2, t3 group.Element) ([][]byte, []byte, error) {
	ctxV := cs.contextString(ModeVerifiable)
	elemLen, err := wire.I2OSP2(cs.Group.ElemLen())
	if err != nil {
		return nil, nil, err
	}
	challengeDST := wire.ChallengeDST(ctxV)
	challengeDSTLen, err := wire.I2OSP2(len(challengeDST))
	if err != nil {
		return nil, nil, err
	}

	parts := [][]byte{
		elemLen, cs.Group.SerializeElement(b),
		elemLen, cs.Group.SerializeElement(m),
		elemLen, cs.Group.SerializeElement(z),
		elemLen, cs.Group.SerializeElement(t2),
		elemLen, cs.Group.SerializeElement(t3),
		challengeDSTLen, challengeDST,
	}
	return parts, wire.HashToScalarDST(ctxV), nil
}

// generateProof implements generate_proof: a batched Chaum-Pedersen proof
// that b equals a scaled by k, and that every d_i equals c_i scaled by k,
// for the single scalar k known only to the prover.
func generateProof(cs CipherSuite, rnd io.Reader, k group.Scalar, a, b group.Element, cSlice, dSlice []group.Element) (*Proof, error) {
	m, z, err := computeComposites(cs, &k, b, cSlice, dSlice)
	if err != nil {
		return nil, err
	}

	r, err := cs.Group.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	t2 := a.ScalarMult(r)
	t3 := m.ScalarMult(r)

	parts, dst, err := challengeTranscript(cs, b, m, z, t2, t3)
	if err != nil {
		return nil, err
	}
	c, err := cs.Group.HashToScalar(parts, dst)
	if err != nil {
		return nil, fmt.Errorf("voprf: generate proof: %w", ErrHashToCurve)
	}

	s := r.Subtract(c.Multiply(k))
	return &Proof{C: c, S: s}, nil
}

// verifyProof implements verify_proof, recomputing the challenge and
// comparing it to the proof's c in constant time.
func verifyProof(cs CipherSuite, a, b group.Element, cSlice, dSlice []group.Element, proof *Proof) error {
	m, z, err := computeComposites(cs, nil, b, cSlice, dSlice)
	if err != nil {
		return err
	}

	t2 := a.ScalarMult(proof.S).Add(b.ScalarMult(proof.C))
	t3 := m.ScalarMult(proof.S).Add(z.ScalarMult(proof.C))

	parts, dst, err := challengeTranscript(cs, b, m, z, t2, t3)
	if err != nil {
		return err
	}
	expected, err := cs.Group.HashToScalar(parts, dst)
	if err != nil {
		return fmt.Errorf("voprf: verify proof: %w", ErrHashToCurve)
	}

	if !expected.Equal(proof.C) {
		return ErrProofVerification
	}
	return nil
}

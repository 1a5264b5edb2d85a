package voprf

import (
	"fmt"
	"io"

	"github.com/wurp/go-voprf/group"
	"github.com/wurp/go-voprf/wire"
)

// blind implements the shared core of Base and Verifiable blinding: sample
// a random scalar, hash the input to a curve point, and scale it.
func blind(cs CipherSuite, rnd io.Reader, input []byte, mode Mode) (group.Scalar, group.Element, error) {
	if len(input) == 0 || len(input) > 65535 {
		return nil, nil, ErrInput
	}
	r, err := cs.Group.RandomScalar(rnd)
	if err != nil {
		return nil, nil, err
	}
	dst := wire.HashToGroupDST(cs.contextString(mode))
	p, err := cs.Group.HashToCurve(input, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("voprf: blind: %w", ErrHashToCurve)
	}
	return r, p.ScalarMult(r), nil
}

func finalizeHash(cs CipherSuite, mode Mode, input, info []byte, n group.Element) ([]byte, error) {
	inputLen, err := wire.I2OSP2(len(input))
	if err != nil {
		return nil, fmt.Errorf("voprf: finalize: %w", ErrInput)
	}
	infoLen, err := wire.I2OSP2(len(info))
	if err != nil {
		return nil, fmt.Errorf("voprf: finalize: %w", ErrMetadata)
	}
	elemLen, err := wire.I2OSP2(cs.Group.ElemLen())
	if err != nil {
		return nil, err
	}
	finalizeDST := wire.FinalizeDST(cs.contextString(mode))
	dstLen, err := wire.I2OSP2(len(finalizeDST))
	if err != nil {
		return nil, err
	}

	h := cs.Hash()
	h.Write(inputLen)
	h.Write(input)
	h.Write(infoLen)
	h.Write(info)
	h.Write(elemLen)
	h.Write(cs.Group.SerializeElement(n))
	h.Write(dstLen)
	h.Write(finalizeDST)
	return h.Sum(nil), nil
}

// NonVerifiableClient holds the state a client must retain between Blind
// and Finalize in Base mode: the blinding scalar.
type NonVerifiableClient struct {
	blind group.Scalar
}

// BlindNonVerifiable runs the client-side Blind step of Base mode. Pass nil
// for rnd to use crypto/rand.
func BlindNonVerifiable(cs CipherSuite, rnd io.Reader, input []byte) (*NonVerifiableClient, *BlindedElement, error) {
	r, p, err := blind(cs, rnd, input, ModeBase)
	if err != nil {
		return nil, nil, err
	}
	return &NonVerifiableClient{blind: r}, &BlindedElement{value: p}, nil
}

// Finalize unblinds the server's evaluation and derives the PRF output.
func (c *NonVerifiableClient) Finalize(cs CipherSuite, input []byte, evaluation *EvaluationElement, info []byte) ([]byte, error) {
	if len(input) == 0 || len(input) > 65535 {
		return nil, ErrInput
	}
	n := evaluation.value.ScalarMult(c.blind.Invert())
	return finalizeHash(cs, ModeBase, input, info, n)
}

// Zeroize overwrites the client's secret blinding scalar. Call this once
// the client no longer needs to Finalize.
func (c *NonVerifiableClient) Zeroize() {
	zeroizeScalar(&c.blind)
}

// VerifiableClient holds the state a client must retain between Blind and
// Finalize in Verifiable mode: the blinding scalar and the blinded element
// it produced, the latter needed to verify the server's proof.
type VerifiableClient struct {
	blind          group.Scalar
	blindedElement group.Element
}

// BlindVerifiable runs the client-side Blind step of Verifiable mode.
func BlindVerifiable(cs CipherSuite, rnd io.Reader, input []byte) (*VerifiableClient, *BlindedElement, error) {
	r, p, err := blind(cs, rnd, input, ModeVerifiable)
	if err != nil {
		return nil, nil, err
	}
	return &VerifiableClient{blind: r, blindedElement: p}, &BlindedElement{value: p}, nil
}

// Finalize verifies the server's proof against this single evaluation and,
// if it checks out, unblinds and finalizes the PRF output.
func (c *VerifiableClient) Finalize(cs CipherSuite, input []byte, evaluation *EvaluationElement, proof *Proof, pk group.Element, info []byte) ([]byte, error) {
	outputs, err := BatchFinalizeVerifiable(cs, [][]byte{input}, []*VerifiableClient{c}, []*EvaluationElement{evaluation}, proof, pk, info)
	if err != nil {
		return nil, err
	}
	return outputs[0], nil
}

// Zeroize overwrites the client's secret blinding scalar.
func (c *VerifiableClient) Zeroize() {
	zeroizeScalar(&c.blind)
}

// BatchFinalizeVerifiable verifies a single batched DLEQ proof covering
// every (client, evaluation) pair at once and, only if it verifies,
// unblinds and finalizes every PRF output. This mirrors
// original_source/src/voprf.rs's verifiable_unblind, generalized from its
// single-element call site to the batch case the Rust source's
// batch_finalize entry point also supports.
func BatchFinalizeVerifiable(cs CipherSuite, inputs [][]byte, clients []*VerifiableClient, messages []*EvaluationElement, proof *Proof, pk group.Element, info []byte) ([][]byte, error) {
	n := len(clients)
	if n == 0 || n != len(messages) || n != len(inputs) || n > 65535 {
		return nil, ErrBatch
	}
	for _, input := range inputs {
		if len(input) == 0 || len(input) > 65535 {
			return nil, ErrInput
		}
	}

	ctxV := cs.contextString(ModeVerifiable)
	contextBytes := wire.ContextDST(ctxV)
	infoLen, err := wire.I2OSP2(len(info))
	if err != nil {
		return nil, fmt.Errorf("voprf: finalize: %w", ErrMetadata)
	}
	m, err := cs.Group.HashToScalar([][]byte{contextBytes, infoLen, info}, wire.HashToScalarDST(ctxV))
	if err != nil {
		return nil, fmt.Errorf("voprf: finalize: %w", ErrHashToCurve)
	}

	g := cs.Group.Base()
	gm := g.ScalarMult(m)
	u := gm.Add(pk)

	blindedElements := make([]group.Element, n)
	evaluationElements := make([]group.Element, n)
	for i := range clients {
		blindedElements[i] = clients[i].blindedElement
		evaluationElements[i] = messages[i].value
	}

	// D_i = C_i^t holds for C_i = evaluation element, D_i = blinded element
	// (since evaluation_i = blinded_i^(1/t)); see BatchEvaluateVerifiable.
	if err := verifyProof(cs, g, u, evaluationElements, blindedElements, proof); err != nil {
		return nil, err
	}

	outputs := make([][]byte, n)
	for i := range clients {
		invBlind := clients[i].blind.Invert()
		unblinded := messages[i].value.ScalarMult(invBlind)
		out, err := finalizeHash(cs, ModeVerifiable, inputs[i], info, unblinded)
		if err != nil {
			return nil, err
		}
		outputs[i] = out
	}
	return outputs, nil
}

package voprf

import (
	"fmt"

	"github.com/wurp/go-voprf/wire"
)

// Serialize encodes the client's state to ScalarLen bytes (the blind).
func (c *NonVerifiableClient) Serialize(cs CipherSuite) []byte {
	return cs.Group.SerializeScalar(c.blind)
}

// DeserializeNonVerifiableClient decodes a NonVerifiableClient previously
// produced by Serialize.
func DeserializeNonVerifiableClient(cs CipherSuite, data []byte) (*NonVerifiableClient, error) {
	if len(data) != cs.Group.ScalarLen() {
		return nil, ErrSizeError
	}
	blind, err := cs.Group.DeserializeScalar(data)
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize client: %w", ErrDeserialization)
	}
	return &NonVerifiableClient{blind: blind}, nil
}

// Serialize encodes the client's state to ScalarLen||ElemLen bytes (the
// blind and the blinded element it produced).
func (c *VerifiableClient) Serialize(cs CipherSuite) []byte {
	return wire.Concat2(cs.Group.SerializeScalar(c.blind), cs.Group.SerializeElement(c.blindedElement))
}

// DeserializeVerifiableClient decodes a VerifiableClient previously produced
// by Serialize.
func DeserializeVerifiableClient(cs CipherSuite, data []byte) (*VerifiableClient, error) {
	parts, err := wire.SplitFixed(data, cs.Group.ScalarLen(), cs.Group.ElemLen())
	if err != nil {
		return nil, ErrSizeError
	}
	blind, err := cs.Group.DeserializeScalar(parts[0])
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize client: %w", ErrDeserialization)
	}
	blindedElement, err := cs.Group.DeserializeElement(parts[1])
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize client: %w", ErrDeserialization)
	}
	return &VerifiableClient{blind: blind, blindedElement: blindedElement}, nil
}

// DeserializeNonVerifiableServer decodes a NonVerifiableServer from a
// ScalarLen-byte private key, identical to NewNonVerifiableServerWithKey.
func DeserializeNonVerifiableServer(cs CipherSuite, data []byte) (*NonVerifiableServer, error) {
	if len(data) != cs.Group.ScalarLen() {
		return nil, ErrSizeError
	}
	return NewNonVerifiableServerWithKey(cs, data)
}

// DeserializeVerifiableServer decodes a VerifiableServer from its
// ScalarLen||ElemLen (sk||pk) encoding, checking that the public key
// matches the private key.
func DeserializeVerifiableServer(cs CipherSuite, data []byte) (*VerifiableServer, error) {
	parts, err := wire.SplitFixed(data, cs.Group.ScalarLen(), cs.Group.ElemLen())
	if err != nil {
		return nil, ErrSizeError
	}
	sk, err := cs.Group.DeserializeScalar(parts[0])
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize server: %w", ErrDeserialization)
	}
	pk, err := cs.Group.DeserializeElement(parts[1])
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize server: %w", ErrDeserialization)
	}
	if !pk.Equal(cs.Group.Base().ScalarMult(sk)) {
		return nil, fmt.Errorf("voprf: deserialize server: %w", ErrDeserialization)
	}
	return &VerifiableServer{sk: sk, pk: pk}, nil
}

// Serialize encodes a Proof to 2*ScalarLen bytes (c||s).
func (p *Proof) Serialize(cs CipherSuite) []byte {
	return wire.Concat2(cs.Group.SerializeScalar(p.C), cs.Group.SerializeScalar(p.S))
}

// DeserializeProof decodes a Proof previously produced by Serialize.
func DeserializeProof(cs CipherSuite, data []byte) (*Proof, error) {
	parts, err := wire.SplitFixed(data, cs.Group.ScalarLen(), cs.Group.ScalarLen())
	if err != nil {
		return nil, ErrSizeError
	}
	c, err := cs.Group.DeserializeScalar(parts[0])
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize proof: %w", ErrDeserialization)
	}
	s, err := cs.Group.DeserializeScalar(parts[1])
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize proof: %w", ErrDeserialization)
	}
	return &Proof{C: c, S: s}, nil
}

package voprf

import (
	"fmt"

	"github.com/wurp/go-voprf/group"
)

// BlindedElement is the client's blinded input, sent to the server.
type BlindedElement struct {
	value group.Element
}

// Serialize encodes the blinded element to its fixed-width wire form.
func (b *BlindedElement) Serialize(cs CipherSuite) []byte {
	return cs.Group.SerializeElement(b.value)
}

// DeserializeBlindedElement decodes a BlindedElement, rejecting the
// identity element (every Element/Scalar invariant in this protocol
// forbids the identity on receipt).
func DeserializeBlindedElement(cs CipherSuite, data []byte) (*BlindedElement, error) {
	e, err := cs.Group.DeserializeElement(data)
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize blinded element: %w", ErrDeserialization)
	}
	return &BlindedElement{value: e}, nil
}

// EvaluationElement is the server's evaluated response, sent to the client.
type EvaluationElement struct {
	value group.Element
}

// Serialize encodes the evaluation element to its fixed-width wire form.
func (e *EvaluationElement) Serialize(cs CipherSuite) []byte {
	return cs.Group.SerializeElement(e.value)
}

// DeserializeEvaluationElement decodes an EvaluationElement, rejecting the
// identity element.
func DeserializeEvaluationElement(cs CipherSuite, data []byte) (*EvaluationElement, error) {
	e, err := cs.Group.DeserializeElement(data)
	if err != nil {
		return nil, fmt.Errorf("voprf: deserialize evaluation element: %w", ErrDeserialization)
	}
	return &EvaluationElement{value: e}, nil
}

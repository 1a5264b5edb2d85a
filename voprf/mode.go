// Package voprf implements the Oblivious Pseudorandom Function protocol of
// draft-irtf-cfrg-voprf-08, in both its Base (unverifiable) and Verifiable
// modes, over two ciphersuites: Ristretto255-SHA512 and P256-SHA256.
//
// A VOPRF evaluation runs in three steps: the client blinds its input, the
// server evaluates the blinded element with its private key (optionally
// attaching a zero-knowledge proof that it used the key matching its public
// key), and the client unblinds the result and finalizes it into the PRF
// output. Base mode skips the proof; Verifiable mode produces one the
// client checks before trusting the output.
package voprf

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/wurp/go-voprf/group"
	"github.com/wurp/go-voprf/wire"
)

// Mode distinguishes the two VOPRF flavors. It is encoded as a single byte
// in the protocol's context string.
type Mode byte

const (
	// ModeBase runs the OPRF without a proof: the server's evaluation is
	// trusted, not verified.
	ModeBase Mode = 0
	// ModeVerifiable attaches a DLEQ proof to every evaluation, letting the
	// client check it was computed with the key behind the server's public
	// key.
	ModeVerifiable Mode = 1
)

// Suite identifies a ciphersuite by its draft-irtf-cfrg-voprf-08 suite ID.
type Suite uint16

const (
	// RistrettoSHA512 is suite 0x0001: the Ristretto255 group with SHA-512.
	RistrettoSHA512 Suite = 0x0001
	// P256SHA256 is suite 0x0003: the P-256 prime-order subgroup with SHA-256.
	P256SHA256 Suite = 0x0003
)

// CipherSuite bundles a Suite's group and hash function. The zero value is
// not valid; use one of the predefined suites below.
type CipherSuite struct {
	ID    Suite
	Group group.Group
	Hash  func() hash.Hash
}

// Ristretto255SHA512 is the Base/Verifiable OPRF ciphersuite using
// Ristretto255 for its group and SHA-512 for Finalize and the DLEQ proof,
// grounded on the teacher's oprf package (which hardcodes this exact pair).
var Ristretto255SHA512 = CipherSuite{ID: RistrettoSHA512, Group: group.Ristretto255{}, Hash: sha512.New}

// P256SHA256Suite is the Base/Verifiable OPRF ciphersuite using the P-256
// prime-order subgroup and SHA-256.
var P256SHA256Suite = CipherSuite{ID: P256SHA256, Group: group.P256{}, Hash: sha256.New}

// contextString returns "VOPRF08-" || mode || I2OSP(suite ID, 2), the
// 11-byte domain separator every DST in the protocol is built from.
func (cs CipherSuite) contextString(mode Mode) []byte {
	return wire.ContextString(uint16(cs.ID), byte(mode))
}

package group

import (
	"encoding/binary"
	"hash"
)

// expandMessageXMD implements expand_message_xmd from RFC 9380 Section 5.3.1,
// generalized over the ciphersuite's hash function and its input block size
// (128 for SHA-512, 64 for SHA-256) so both Ristretto255-SHA512 and
// P256-SHA256 share one implementation.
func expandMessageXMD(newHash func() hash.Hash, outputBytes, blockSize int, msg, dst []byte, lenInBytes int) ([]byte, error) {
	ell := (lenInBytes + outputBytes - 1) / outputBytes
	if ell > 255 || lenInBytes > 65535 {
		return nil, ErrHashToCurve
	}

	// RFC 9380 5.3.1: a DST longer than 255 bytes is replaced by a shorter
	// tag derived from it, rather than rejected, so callers never have to
	// reason about a DST length ceiling.
	if len(dst) > 255 {
		h := newHash()
		h.Write([]byte("H2C-OVERSIZE-DST-"))
		h.Write(dst)
		dst = h.Sum(nil)
	}

	dstPrime := make([]byte, len(dst)+1)
	copy(dstPrime, dst)
	dstPrime[len(dst)] = byte(len(dst))

	zPad := make([]byte, blockSize)

	libStr := make([]byte, 2)
	binary.BigEndian.PutUint16(libStr, uint16(lenInBytes))

	h := newHash()
	h.Write(zPad)
	h.Write(msg)
	h.Write(libStr)
	h.Write([]byte{0})
	h.Write(dstPrime)
	b0 := h.Sum(nil)

	h = newHash()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dstPrime)
	b1 := h.Sum(nil)

	uniformBytes := make([]byte, 0, ell*outputBytes)
	uniformBytes = append(uniformBytes, b1...)

	bPrev := b1
	for i := 2; i <= ell; i++ {
		xored := make([]byte, outputBytes)
		for j := 0; j < outputBytes; j++ {
			xored[j] = b0[j] ^ bPrev[j]
		}

		h = newHash()
		h.Write(xored)
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		bi := h.Sum(nil)

		uniformBytes = append(uniformBytes, bi...)
		bPrev = bi
	}

	return uniformBytes[:lenInBytes], nil
}

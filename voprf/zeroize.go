package voprf

import "github.com/wurp/go-voprf/group"

// zeroizeScalar best-effort erases a secret scalar's backing storage and
// clears the caller's reference to it, mirroring the teacher's
// backkem-matter SecureContext.ZeroizeKeys pattern (overwrite then drop).
func zeroizeScalar(s *group.Scalar) {
	if s == nil || *s == nil {
		return
	}
	if z, ok := (*s).(group.Zeroizer); ok {
		z.Zeroize()
	}
	*s = nil
}

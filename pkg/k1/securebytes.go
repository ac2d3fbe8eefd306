package k1

import (
	"crypto/subtle"
	"runtime"
)

// secureBytes owns a private scalar. It compares in constant time and is
// zeroed explicitly by its owner; the finalizer only catches keys that were
// dropped without Zero.
type secureBytes struct {
	b []byte
}

func newSecureBytes(src []byte) *secureBytes {
	s := &secureBytes{b: make([]byte, len(src))}
	copy(s.b, src)
	runtime.SetFinalizer(s, (*secureBytes).zero)
	return s
}

// bytes returns a copy the caller must zero.
func (s *secureBytes) bytes() []byte {
	out := make([]byte, len(s.b))
	copy(out, s.b)
	return out
}

func (s *secureBytes) equal(o *secureBytes) bool {
	return subtle.ConstantTimeCompare(s.b, o.b) == 1
}

func (s *secureBytes) zero() {
	zero(s.b)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

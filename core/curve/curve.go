// Package curve holds the fixed secp256k1 parameters the key layers rely on.
package curve

import (
	"encoding/asn1"
	"encoding/hex"

	"github.com/cronokirby/saferith"
)

const (
	Name = "secp256k1"

	// FieldByteCount is the size of a field element and of a raw scalar.
	FieldByteCount = 32

	CompressedByteCount   = 1 + FieldByteCount
	UncompressedByteCount = 1 + 2*FieldByteCount
	RawPublicByteCount    = 2 * FieldByteCount

	// X963PrivateByteCount is an uncompressed public key followed by the scalar.
	X963PrivateByteCount = UncompressedByteCount + FieldByteCount

	TagUncompressed   byte = 0x04
	TagCompressedEven byte = 0x02
	TagCompressedOdd  byte = 0x03
)

var (
	// OIDNamedCurve is the secp256k1 named curve, 1.3.132.0.10.
	OIDNamedCurve = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
	// OIDPublicKeyEC is id-ecPublicKey, 1.2.840.10045.2.1.
	OIDPublicKeyEC = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

var orderBytes = mustDecodeHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

// OrderBytes returns the big-endian group order n.
func OrderBytes() []byte {
	out := make([]byte, len(orderBytes))
	copy(out, orderBytes)
	return out
}

// Order returns the group order as a fresh saferith modulus. saferith
// writes into a modulus while comparing, so it must not be shared across
// goroutines.
func Order() *saferith.Modulus {
	return saferith.ModulusFromBytes(orderBytes)
}

// IsValidScalar reports whether b is a 32-byte big-endian integer in (0, n).
// The comparison runs in constant time with respect to the value of b.
func IsValidScalar(b []byte) bool {
	if len(b) != FieldByteCount {
		return false
	}
	x := new(saferith.Nat).SetBytes(b)
	n := new(saferith.Nat).SetBytes(orderBytes)
	_, _, lt := x.Cmp(n)
	nonZero := x.EqZero() ^ 1
	return (lt & nonZero) == 1
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

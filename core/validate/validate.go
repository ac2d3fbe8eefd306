// Package validate checks the shape of raw key material before any curve
// operation touches it. Value checks are left to the bridge.
package validate

import (
	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
)

func RawPrivateKey(b []byte) error {
	return length("raw private key", curve.FieldByteCount, b)
}

func X963PrivateKey(b []byte) error {
	return length("x963 private key", curve.X963PrivateByteCount, b)
}

func CompressedPublicKey(b []byte) error {
	return length("compressed public key", curve.CompressedByteCount, b)
}

func UncompressedPublicKey(b []byte) error {
	return length("uncompressed public key", curve.UncompressedByteCount, b)
}

func RawPublicKey(b []byte) error {
	return length("raw public key", curve.RawPublicByteCount, b)
}

func length(what string, expected int, b []byte) error {
	if len(b) != expected {
		return keyerr.Size(what, expected, len(b))
	}
	return nil
}

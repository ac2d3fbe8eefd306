package k1

import (
	"io"

	"github.com/mr-shifu/k1-lib/core/asn1"
	"github.com/mr-shifu/k1-lib/core/bridge"
	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	"github.com/mr-shifu/k1-lib/core/validate"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxGenerateAttempts bounds rejection sampling. A healthy source fails a
// single draw with probability about 2^-128.
const maxGenerateAttempts = 64

// PrivateKey is a secp256k1 scalar in (0, n) together with the public key
// derived from it. Call Zero when the key is no longer needed.
type PrivateKey struct {
	scalar    *secureBytes
	publicKey PublicKey
}

// fromScalar validates the scalar and derives its public key. The scalar
// is copied; the caller keeps ownership of b.
func (f *Factory) fromScalar(b []byte) (*PrivateKey, error) {
	if err := validate.RawPrivateKey(b); err != nil {
		return nil, err
	}
	if !f.bridge.ValidatePrivateScalar(b) {
		return nil, keyerr.Range("private scalar must be in (0, n)")
	}

	var pub PublicKey
	err := f.bridge.WithContext(func(ctx *bridge.Context) error {
		p, err := f.bridge.DerivePublicKey(ctx, b)
		if err != nil {
			return err
		}
		pub, err = f.publicKeyFromPoint(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PrivateKey{
		scalar:    newSecureBytes(b),
		publicKey: pub,
	}, nil
}

// GeneratePrivateKey draws a uniformly random scalar in (0, n).
func (f *Factory) GeneratePrivateKey() (*PrivateKey, error) {
	buf := make([]byte, curve.FieldByteCount)
	defer zero(buf)

	for i := 0; i < maxGenerateAttempts; i++ {
		if _, err := io.ReadFull(f.rand, buf); err != nil {
			return nil, errors.WithMessage(err, "k1: reading random scalar")
		}
		if !f.bridge.ValidatePrivateScalar(buf) {
			continue
		}
		k, err := f.fromScalar(buf)
		if err != nil {
			return nil, err
		}
		f.log.Debug("private key generated", zap.Int("attempts", i+1))
		return k, nil
	}
	return nil, errors.New("k1: random source produced no valid scalar")
}

func (f *Factory) PrivateKeyFromRaw(b []byte) (*PrivateKey, error) {
	return f.fromScalar(b)
}

// PrivateKeyFromX963 imports the uncompressed public key followed by the
// scalar. The embedded public key must match the one derived from the
// scalar.
func (f *Factory) PrivateKeyFromX963(b []byte) (*PrivateKey, error) {
	if err := validate.X963PrivateKey(b); err != nil {
		return nil, err
	}

	embedded, err := f.PublicKeyFromX963(b[:curve.UncompressedByteCount])
	if err != nil {
		return nil, err
	}
	k, err := f.fromScalar(b[curve.UncompressedByteCount:])
	if err != nil {
		return nil, err
	}
	if !k.publicKey.Equal(embedded) {
		k.Zero()
		return nil, keyerr.Consistency("x963 public key does not match the private key")
	}
	return k, nil
}

// PrivateKeyFromDER imports PKCS#8, falling back to bare SEC1. Any public
// key embedded in the structure is ignored and re-derived.
func (f *Factory) PrivateKeyFromDER(der []byte) (*PrivateKey, error) {
	key, err := asn1.ParsePrivateKeyDER(der)
	if err != nil {
		return nil, err
	}
	defer key.Zero()
	return f.fromScalar(key.PrivateKey)
}

// PrivateKeyFromPEM imports a "PRIVATE KEY" (PKCS#8) or "EC PRIVATE KEY"
// (SEC1) document.
func (f *Factory) PrivateKeyFromPEM(s string) (*PrivateKey, error) {
	doc, err := asn1.ParsePEMDocument(s)
	if err != nil {
		return nil, err
	}
	defer zero(doc.DER)

	key, err := asn1.ParsePrivateKeyPEM(doc)
	if err != nil {
		return nil, err
	}
	defer key.Zero()
	return f.fromScalar(key.PrivateKey)
}

func (f *Factory) ParsePrivateKey(data []byte, r Representation) (*PrivateKey, error) {
	switch r {
	case RepresentationRaw:
		return f.PrivateKeyFromRaw(data)
	case RepresentationX963:
		return f.PrivateKeyFromX963(data)
	case RepresentationDER:
		return f.PrivateKeyFromDER(data)
	case RepresentationPEM:
		return f.PrivateKeyFromPEM(string(data))
	default:
		return nil, ErrUnsupportedRepresentation
	}
}

func (k *PrivateKey) PublicKey() PublicKey {
	return k.publicKey
}

// Raw returns a copy of the 32-byte scalar.
func (k *PrivateKey) Raw() []byte {
	return k.scalar.bytes()
}

// X963 returns the uncompressed public key followed by the scalar.
func (k *PrivateKey) X963() []byte {
	out := make([]byte, 0, curve.X963PrivateByteCount)
	out = append(out, k.publicKey.uncompressed[:]...)
	return append(out, k.scalar.b...)
}

// DER returns the PKCS#8 encoding.
func (k *PrivateKey) DER() []byte {
	raw := k.scalar.bytes()
	defer zero(raw)
	return asn1.NewPKCS8PrivateKey(raw, k.publicKey.X963()).Marshal()
}

// PEM returns the PKCS#8 encoding under the "PRIVATE KEY" label.
func (k *PrivateKey) PEM() string {
	der := k.DER()
	defer zero(der)
	return asn1.PEMDocument{Type: asn1.LabelPrivateKey, DER: der}.String()
}

// SEC1DER returns the bare ECPrivateKey encoding with the named curve.
func (k *PrivateKey) SEC1DER() []byte {
	raw := k.scalar.bytes()
	defer zero(raw)
	return asn1.SEC1PrivateKey{
		PrivateKey: raw,
		Curve:      curve.OIDNamedCurve,
		PublicKey:  k.publicKey.X963(),
	}.Marshal()
}

// SEC1PEM returns SEC1DER under the "EC PRIVATE KEY" label.
func (k *PrivateKey) SEC1PEM() string {
	der := k.SEC1DER()
	defer zero(der)
	return asn1.PEMDocument{Type: asn1.LabelECPrivateKey, DER: der}.String()
}

func (k *PrivateKey) Encode(r Representation) ([]byte, error) {
	switch r {
	case RepresentationRaw:
		return k.Raw(), nil
	case RepresentationX963:
		return k.X963(), nil
	case RepresentationDER:
		return k.DER(), nil
	case RepresentationPEM:
		return []byte(k.PEM()), nil
	default:
		return nil, ErrUnsupportedRepresentation
	}
}

// Equal compares the scalars in constant time.
func (k *PrivateKey) Equal(o *PrivateKey) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.scalar.equal(o.scalar)
}

// Zero wipes the scalar. The key must not be used afterwards.
func (k *PrivateKey) Zero() {
	k.scalar.zero()
}

func (k *PrivateKey) String() string {
	return "PrivateKey{*****}"
}

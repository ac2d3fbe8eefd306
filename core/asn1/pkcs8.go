package asn1

import (
	encasn1 "encoding/asn1"

	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

const pkcs8Version = 0

var (
	tagPKCS8Attributes = cbasn1.Tag(0).Constructed().ContextSpecific()
	tagPKCS8PublicKey  = cbasn1.Tag(1).ContextSpecific()
)

// PKCS8PrivateKey is a PrivateKeyInfo wrapping a SEC1 private key with the
// id-ecPublicKey/secp256k1 algorithm identifier.
type PKCS8PrivateKey struct {
	PrivateKey SEC1PrivateKey
}

// NewPKCS8PrivateKey builds the wrapper from a raw scalar and the X9.63
// (uncompressed) public key. The inner SEC1 structure omits the curve,
// which the algorithm identifier already names.
func NewPKCS8PrivateKey(scalar, publicKeyX963 []byte) PKCS8PrivateKey {
	return PKCS8PrivateKey{
		PrivateKey: SEC1PrivateKey{
			PrivateKey: scalar,
			PublicKey:  publicKeyX963,
		},
	}
}

// Marshal returns the DER encoding of k.
func (k PKCS8PrivateKey) Marshal() []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(pkcs8Version)
		addAlgorithmIdentifier(b)
		b.AddASN1(cbasn1.OCTET_STRING, func(b *cryptobyte.Builder) {
			k.PrivateKey.marshalInto(b)
		})
	})
	return b.BytesOrPanic()
}

// ParsePKCS8PrivateKey decodes a PrivateKeyInfo holding a secp256k1 key.
// Version 1 (OneAsymmetricKey) is accepted and its optional attributes and
// public key fields are skipped.
func ParsePKCS8PrivateKey(der []byte) (PKCS8PrivateKey, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return PKCS8PrivateKey{}, keyerr.Structure("pkcs8: malformed PrivateKeyInfo sequence", nil)
	}

	var version int
	if !seq.ReadASN1Integer(&version) {
		return PKCS8PrivateKey{}, keyerr.Structure("pkcs8: malformed version", nil)
	}
	if version != 0 && version != 1 {
		return PKCS8PrivateKey{}, keyerr.Structure("pkcs8: unsupported version", nil)
	}

	if err := readAlgorithmIdentifier(&seq); err != nil {
		return PKCS8PrivateKey{}, err
	}

	var inner cryptobyte.String
	if !seq.ReadASN1(&inner, cbasn1.OCTET_STRING) {
		return PKCS8PrivateKey{}, keyerr.Structure("pkcs8: malformed private key", nil)
	}
	var sec1 cryptobyte.String
	if !inner.ReadASN1(&sec1, cbasn1.SEQUENCE) || !inner.Empty() {
		return PKCS8PrivateKey{}, keyerr.Structure("pkcs8: private key is not an ECPrivateKey", nil)
	}
	key, err := parseSEC1(sec1)
	if err != nil {
		return PKCS8PrivateKey{}, err
	}

	if !seq.SkipOptionalASN1(tagPKCS8Attributes) || !seq.SkipOptionalASN1(tagPKCS8PublicKey) || !seq.Empty() {
		key.Zero()
		return PKCS8PrivateKey{}, keyerr.Structure("pkcs8: trailing data", nil)
	}
	return PKCS8PrivateKey{PrivateKey: key}, nil
}

func addAlgorithmIdentifier(b *cryptobyte.Builder) {
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(curve.OIDPublicKeyEC)
		b.AddASN1ObjectIdentifier(curve.OIDNamedCurve)
	})
}

func readAlgorithmIdentifier(s *cryptobyte.String) error {
	var algID cryptobyte.String
	if !s.ReadASN1(&algID, cbasn1.SEQUENCE) {
		return keyerr.Structure("malformed algorithm identifier", nil)
	}
	var alg, params encasn1.ObjectIdentifier
	if !algID.ReadASN1ObjectIdentifier(&alg) {
		return keyerr.Structure("malformed algorithm oid", nil)
	}
	if !alg.Equal(curve.OIDPublicKeyEC) {
		return keyerr.Structure("unsupported algorithm "+alg.String(), nil)
	}
	if !algID.ReadASN1ObjectIdentifier(&params) || !algID.Empty() {
		return keyerr.Structure("malformed named curve parameter", nil)
	}
	if !params.Equal(curve.OIDNamedCurve) {
		return keyerr.Structure("unsupported curve "+params.String(), nil)
	}
	return nil
}

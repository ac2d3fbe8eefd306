// Package asn1 encodes and decodes the DER and PEM containers used for
// secp256k1 keys: SEC1 ECPrivateKey, PKCS#8 PrivateKeyInfo and
// SubjectPublicKeyInfo.
package asn1

import (
	encasn1 "encoding/asn1"

	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

const ecPrivKeyVersion = 1

var (
	tagSEC1Curve     = cbasn1.Tag(0).Constructed().ContextSpecific()
	tagSEC1PublicKey = cbasn1.Tag(1).Constructed().ContextSpecific()
)

// SEC1PrivateKey is the RFC 5915 ECPrivateKey structure.
//
//	ECPrivateKey ::= SEQUENCE {
//	  version        INTEGER { ecPrivkeyVer1(1) },
//	  privateKey     OCTET STRING,
//	  parameters [0] ECParameters OPTIONAL,
//	  publicKey  [1] BIT STRING OPTIONAL }
//
// The embedded public key is carried as-is and never trusted; key objects
// re-derive it from PrivateKey.
type SEC1PrivateKey struct {
	PrivateKey []byte

	// Curve is omitted from the encoding when nil.
	Curve encasn1.ObjectIdentifier

	// PublicKey is omitted from the encoding when nil.
	PublicKey []byte
}

// Zero clears the private scalar.
func (k *SEC1PrivateKey) Zero() {
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
}

// Marshal returns the DER encoding of k.
func (k SEC1PrivateKey) Marshal() []byte {
	var b cryptobyte.Builder
	k.marshalInto(&b)
	return b.BytesOrPanic()
}

func (k SEC1PrivateKey) marshalInto(b *cryptobyte.Builder) {
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(ecPrivKeyVersion)
		b.AddASN1OctetString(k.PrivateKey)
		if k.Curve != nil {
			b.AddASN1(tagSEC1Curve, func(b *cryptobyte.Builder) {
				b.AddASN1ObjectIdentifier(k.Curve)
			})
		}
		if k.PublicKey != nil {
			b.AddASN1(tagSEC1PublicKey, func(b *cryptobyte.Builder) {
				b.AddASN1BitString(k.PublicKey)
			})
		}
	})
}

// ParseSEC1PrivateKey decodes a bare ECPrivateKey. A private key octet
// string shorter than the field size is left-padded. The returned
// PrivateKey is a fresh buffer owned by the caller.
func ParseSEC1PrivateKey(der []byte) (SEC1PrivateKey, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed ECPrivateKey sequence", nil)
	}
	return parseSEC1(seq)
}

func parseSEC1(seq cryptobyte.String) (SEC1PrivateKey, error) {
	var version int
	if !seq.ReadASN1Integer(&version) {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed version", nil)
	}
	if version != ecPrivKeyVersion {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: unsupported version", nil)
	}

	var priv cryptobyte.String
	if !seq.ReadASN1(&priv, cbasn1.OCTET_STRING) {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed private key", nil)
	}
	if len(priv) > curve.FieldByteCount {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: private key too long", nil)
	}

	var key SEC1PrivateKey

	var params cryptobyte.String
	var hasParams bool
	if !seq.ReadOptionalASN1(&params, &hasParams, tagSEC1Curve) {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed parameters", nil)
	}
	if hasParams {
		var oid encasn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&oid) || !params.Empty() {
			return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed named curve", nil)
		}
		if !oid.Equal(curve.OIDNamedCurve) {
			return SEC1PrivateKey{}, keyerr.Structure("sec1: unsupported curve "+oid.String(), nil)
		}
		key.Curve = oid
	}

	var pubField cryptobyte.String
	var hasPub bool
	if !seq.ReadOptionalASN1(&pubField, &hasPub, tagSEC1PublicKey) {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed public key", nil)
	}
	if hasPub {
		var bs encasn1.BitString
		if !pubField.ReadASN1BitString(&bs) || !pubField.Empty() || bs.BitLength%8 != 0 {
			return SEC1PrivateKey{}, keyerr.Structure("sec1: malformed public key bit string", nil)
		}
		key.PublicKey = append([]byte(nil), bs.Bytes...)
	}

	if !seq.Empty() {
		return SEC1PrivateKey{}, keyerr.Structure("sec1: trailing data", nil)
	}

	key.PrivateKey = make([]byte, curve.FieldByteCount)
	copy(key.PrivateKey[curve.FieldByteCount-len(priv):], priv)
	return key, nil
}

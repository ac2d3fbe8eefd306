package asn1

import (
	encasn1 "encoding/asn1"

	"github.com/mr-shifu/k1-lib/core/keyerr"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// SubjectPublicKeyInfo carries an encoded secp256k1 point.
type SubjectPublicKeyInfo struct {
	PublicKey []byte
}

func (k SubjectPublicKeyInfo) Marshal() []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addAlgorithmIdentifier(b)
		b.AddASN1BitString(k.PublicKey)
	})
	return b.BytesOrPanic()
}

// ParseSubjectPublicKeyInfo returns the point bytes without checking them
// against the curve.
func ParseSubjectPublicKeyInfo(der []byte) (SubjectPublicKeyInfo, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return SubjectPublicKeyInfo{}, keyerr.Structure("spki: malformed sequence", nil)
	}
	if err := readAlgorithmIdentifier(&seq); err != nil {
		return SubjectPublicKeyInfo{}, err
	}
	var bs encasn1.BitString
	if !seq.ReadASN1BitString(&bs) || bs.BitLength%8 != 0 {
		return SubjectPublicKeyInfo{}, keyerr.Structure("spki: malformed public key bit string", nil)
	}
	if !seq.Empty() {
		return SubjectPublicKeyInfo{}, keyerr.Structure("spki: trailing data", nil)
	}
	return SubjectPublicKeyInfo{PublicKey: append([]byte(nil), bs.Bytes...)}, nil
}

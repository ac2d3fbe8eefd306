package k1

import (
	"encoding/hex"

	"github.com/mr-shifu/k1-lib/core/asn1"
	"github.com/mr-shifu/k1-lib/core/bridge"
	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	"github.com/mr-shifu/k1-lib/core/validate"
)

// PublicKey is an immutable secp256k1 point. Both octet encodings are
// computed by the engine at construction, so exports cannot fail.
type PublicKey struct {
	point        bridge.Point
	compressed   [curve.CompressedByteCount]byte
	uncompressed [curve.UncompressedByteCount]byte
}

func (f *Factory) publicKeyFromPoint(ctx *bridge.Context, p bridge.Point) (PublicKey, error) {
	comp, err := f.bridge.SerializePublicKey(ctx, p, bridge.FormatCompressed)
	if err != nil {
		return PublicKey{}, err
	}
	unc, err := f.bridge.SerializePublicKey(ctx, p, bridge.FormatUncompressed)
	if err != nil {
		return PublicKey{}, err
	}

	pk := PublicKey{point: p}
	copy(pk.compressed[:], comp)
	copy(pk.uncompressed[:], unc)
	return pk, nil
}

// parsePublicKey runs an already length-checked octet string through the
// engine.
func (f *Factory) parsePublicKey(b []byte) (pk PublicKey, err error) {
	err = f.bridge.WithContext(func(ctx *bridge.Context) error {
		p, err := f.bridge.ParsePublicKey(ctx, b)
		if err != nil {
			return err
		}
		pk, err = f.publicKeyFromPoint(ctx, p)
		return err
	})
	return pk, err
}

// PublicKeyFromRaw imports the 64-byte X||Y form.
func (f *Factory) PublicKeyFromRaw(b []byte) (PublicKey, error) {
	if err := validate.RawPublicKey(b); err != nil {
		return PublicKey{}, err
	}
	unc := make([]byte, 0, curve.UncompressedByteCount)
	unc = append(unc, curve.TagUncompressed)
	unc = append(unc, b...)
	return f.parsePublicKey(unc)
}

func (f *Factory) PublicKeyFromCompressed(b []byte) (PublicKey, error) {
	if err := validate.CompressedPublicKey(b); err != nil {
		return PublicKey{}, err
	}
	return f.parsePublicKey(b)
}

func (f *Factory) PublicKeyFromUncompressed(b []byte) (PublicKey, error) {
	if err := validate.UncompressedPublicKey(b); err != nil {
		return PublicKey{}, err
	}
	return f.parsePublicKey(b)
}

// PublicKeyFromX963 is the same as PublicKeyFromUncompressed; the X9.63
// public key encoding is the uncompressed point.
func (f *Factory) PublicKeyFromX963(b []byte) (PublicKey, error) {
	return f.PublicKeyFromUncompressed(b)
}

// PublicKeyFromDER imports a SubjectPublicKeyInfo holding either point
// encoding.
func (f *Factory) PublicKeyFromDER(der []byte) (PublicKey, error) {
	spki, err := asn1.ParseSubjectPublicKeyInfo(der)
	if err != nil {
		return PublicKey{}, err
	}
	if len(spki.PublicKey) == curve.CompressedByteCount {
		return f.PublicKeyFromCompressed(spki.PublicKey)
	}
	return f.PublicKeyFromUncompressed(spki.PublicKey)
}

func (f *Factory) PublicKeyFromPEM(s string) (PublicKey, error) {
	doc, err := asn1.ParsePEMDocument(s)
	if err != nil {
		return PublicKey{}, err
	}
	if doc.Type != asn1.LabelPublicKey {
		return PublicKey{}, keyerr.Structure("pem: unsupported public key label "+doc.Type, nil)
	}
	return f.PublicKeyFromDER(doc.DER)
}

func (f *Factory) ParsePublicKey(data []byte, r Representation) (PublicKey, error) {
	switch r {
	case RepresentationRaw:
		return f.PublicKeyFromRaw(data)
	case RepresentationCompressed:
		return f.PublicKeyFromCompressed(data)
	case RepresentationUncompressed:
		return f.PublicKeyFromUncompressed(data)
	case RepresentationX963:
		return f.PublicKeyFromX963(data)
	case RepresentationDER:
		return f.PublicKeyFromDER(data)
	case RepresentationPEM:
		return f.PublicKeyFromPEM(string(data))
	default:
		return PublicKey{}, ErrUnsupportedRepresentation
	}
}

// Raw returns the 64-byte X||Y form.
func (pk PublicKey) Raw() []byte {
	return append([]byte(nil), pk.uncompressed[1:]...)
}

func (pk PublicKey) Compressed() []byte {
	return append([]byte(nil), pk.compressed[:]...)
}

func (pk PublicKey) Uncompressed() []byte {
	return append([]byte(nil), pk.uncompressed[:]...)
}

func (pk PublicKey) X963() []byte {
	return pk.Uncompressed()
}

// DER returns a SubjectPublicKeyInfo with the uncompressed point.
func (pk PublicKey) DER() []byte {
	return asn1.SubjectPublicKeyInfo{PublicKey: pk.Uncompressed()}.Marshal()
}

func (pk PublicKey) PEM() string {
	return asn1.PEMDocument{Type: asn1.LabelPublicKey, DER: pk.DER()}.String()
}

func (pk PublicKey) Encode(r Representation) ([]byte, error) {
	switch r {
	case RepresentationRaw:
		return pk.Raw(), nil
	case RepresentationCompressed:
		return pk.Compressed(), nil
	case RepresentationUncompressed, RepresentationX963:
		return pk.Uncompressed(), nil
	case RepresentationDER:
		return pk.DER(), nil
	case RepresentationPEM:
		return []byte(pk.PEM()), nil
	default:
		return nil, ErrUnsupportedRepresentation
	}
}

func (pk PublicKey) Equal(o PublicKey) bool {
	return pk.point.Equal(o.point)
}

// IsZero reports whether pk is the zero value rather than a constructed key.
func (pk PublicKey) IsZero() bool {
	return pk.uncompressed[0] == 0
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk.compressed[:])
}

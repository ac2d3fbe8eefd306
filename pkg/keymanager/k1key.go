package keymanager

import (
	"crypto/sha256"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	comm_keymanager "github.com/mr-shifu/k1-lib/pkg/common/keymanager"
	"github.com/mr-shifu/k1-lib/pkg/k1"
)

var ErrInvalidKey = errors.New("keymanager: invalid key")

type K1KeyImpl struct {
	// Private key, nil for a public key
	priv *k1.PrivateKey

	// Public key
	pub k1.PublicKey
}

var _ comm_keymanager.K1Key = (*K1KeyImpl)(nil)

type rawK1Key struct {
	Curve string
	Priv  []byte
	Pub   []byte
}

func NewPrivateKey(priv *k1.PrivateKey) *K1KeyImpl {
	return &K1KeyImpl{priv: priv, pub: priv.PublicKey()}
}

func NewPublicKey(pub k1.PublicKey) *K1KeyImpl {
	return &K1KeyImpl{pub: pub}
}

func (key *K1KeyImpl) Bytes() ([]byte, error) {
	raw := &rawK1Key{
		Curve: curve.Name,
		Pub:   key.pub.Compressed(),
	}
	if key.priv != nil {
		raw.Priv = key.priv.Raw()
		defer zero(raw.Priv)
	}
	return cbor.Marshal(raw)
}

func (key *K1KeyImpl) SKI() []byte {
	hash := sha256.New()
	hash.Write(key.pub.Uncompressed())
	return hash.Sum(nil)
}

func (key *K1KeyImpl) Private() bool {
	return key.priv != nil
}

func (key *K1KeyImpl) PublicKey() comm_keymanager.K1Key {
	return NewPublicKey(key.pub)
}

func (key *K1KeyImpl) PrivateKeyRaw() *k1.PrivateKey {
	return key.priv
}

func (key *K1KeyImpl) PublicKeyRaw() k1.PublicKey {
	return key.pub
}

func (key *K1KeyImpl) Export(r k1.Representation) ([]byte, error) {
	if key.priv != nil {
		return key.priv.Encode(r)
	}
	return key.pub.Encode(r)
}

func (key *K1KeyImpl) Zero() {
	if key.priv != nil {
		key.priv.Zero()
	}
}

// fromBytes decodes a stored record. The private scalar is re-validated and
// the stored public key must match the derived one.
func fromBytes(f *k1.Factory, data []byte) (*K1KeyImpl, error) {
	raw := &rawK1Key{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, keyerr.Structure("keymanager: malformed key record", err)
	}
	defer zero(raw.Priv)

	if raw.Curve != curve.Name {
		return nil, errors.WithMessagef(ErrInvalidKey, "unsupported curve %q", raw.Curve)
	}

	pub, err := f.PublicKeyFromCompressed(raw.Pub)
	if err != nil {
		return nil, err
	}
	if len(raw.Priv) == 0 {
		return NewPublicKey(pub), nil
	}

	priv, err := f.PrivateKeyFromRaw(raw.Priv)
	if err != nil {
		return nil, err
	}
	if !priv.PublicKey().Equal(pub) {
		priv.Zero()
		return nil, keyerr.Consistency("keymanager: stored public key does not match the private key")
	}
	return NewPrivateKey(priv), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package keymanager

import (
	"github.com/mr-shifu/k1-lib/pkg/common/keyopts"
	"github.com/mr-shifu/k1-lib/pkg/k1"
)

type K1Key interface {
	// Bytes returns the CBOR record stored for the key.
	Bytes() ([]byte, error)

	// SKI returns the SHA-256 of the uncompressed public key.
	SKI() []byte

	// Private returns true if the key holds a private scalar.
	Private() bool

	// PublicKey returns the public part of the key.
	PublicKey() K1Key

	// PrivateKeyRaw returns the private key, or nil for a public key.
	PrivateKeyRaw() *k1.PrivateKey

	PublicKeyRaw() k1.PublicKey

	// Export encodes the key. Private keys are exported in private form.
	Export(r k1.Representation) ([]byte, error)

	// Zero wipes the private scalar, if any.
	Zero()
}

type K1KeyManager interface {
	// GenerateKey creates and stores a new private key. A missing "id"
	// option is filled with a fresh UUID; nil opts are rejected.
	GenerateKey(opts keyopts.Options) (K1Key, error)

	// ImportKey stores a *k1.PrivateKey, a k1.PublicKey, a K1Key or a CBOR
	// record produced by K1Key.Bytes.
	ImportKey(raw interface{}, opts keyopts.Options) (K1Key, error)

	// ImportEncoded decodes data in the given representation and stores it.
	ImportEncoded(data []byte, r k1.Representation, private bool, opts keyopts.Options) (K1Key, error)

	GetKey(opts keyopts.Options) (K1Key, error)

	ExportKey(r k1.Representation, opts keyopts.Options) ([]byte, error)

	// DeleteKey removes the key for "id" and "owner", or every owner's key
	// for "id" when no owner is given.
	DeleteKey(opts keyopts.Options) error
}

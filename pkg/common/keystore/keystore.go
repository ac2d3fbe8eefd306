package keystore

import "github.com/mr-shifu/k1-lib/pkg/common/keyopts"

// Keystore stores key material in a vault and indexes it through key
// options.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	DeleteAll(opts keyopts.Options) error
	KeyAccessor(ski string, opts keyopts.Options) KeyAccessor
}

// KeyAccessor is a Keystore bound to one key.
type KeyAccessor interface {
	Import(key []byte) error
	Get() ([]byte, error)
	Delete() error
}

package keystore

import (
	"github.com/pkg/errors"

	"github.com/mr-shifu/k1-lib/pkg/common/keyopts"
	"github.com/mr-shifu/k1-lib/pkg/common/keystore"
	"github.com/mr-shifu/k1-lib/pkg/common/vault"
)

type InMemoryKeystore struct {
	v  vault.Vault
	kr keyopts.KeyOpts
}

var _ keystore.Keystore = (*InMemoryKeystore)(nil)

func NewInMemoryKeystore(v vault.Vault, kr keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:  v,
		kr: kr,
	}
}

func (ks *InMemoryKeystore) Import(ski string, key []byte, opts keyopts.Options) error {
	var replaced string
	if kd, err := ks.kr.Get(opts); err == nil && kd.SKI != ski {
		replaced = kd.SKI
	}

	// store key to vault
	if err := ks.v.Import(ski, key); err != nil {
		return errors.WithMessage(err, "keystore: failed to import key to vault")
	}

	// link key metadata to the key options
	if err := ks.kr.Import(ski, opts); err != nil {
		_ = ks.release(ski)
		return err
	}

	if replaced != "" {
		return ks.release(replaced)
	}
	return nil
}

func (ks *InMemoryKeystore) Get(opts keyopts.Options) ([]byte, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return nil, err
	}

	return ks.v.Get(kd.SKI)
}

// Delete unlinks the key for "id" and "owner". The vault entry goes away
// once no other entry refers to the same SKI.
func (ks *InMemoryKeystore) Delete(opts keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return err
	}

	if err := ks.kr.Delete(opts); err != nil {
		return err
	}

	return ks.release(kd.SKI)
}

func (ks *InMemoryKeystore) DeleteAll(opts keyopts.Options) error {
	keys, err := ks.kr.GetAll(opts)
	if err != nil {
		return err
	}

	if err := ks.kr.DeleteAll(opts); err != nil {
		return err
	}

	for _, key := range keys {
		if err := ks.release(key.SKI); err != nil {
			return err
		}
	}

	return nil
}

func (ks *InMemoryKeystore) KeyAccessor(ski string, opts keyopts.Options) keystore.KeyAccessor {
	return NewInMemoryKeyAccessor(ski, opts, ks)
}

func (ks *InMemoryKeystore) release(ski string) error {
	if ks.kr.Referenced(ski) {
		return nil
	}
	if !ks.v.Has(ski) {
		// already released through another owner
		return nil
	}
	return ks.v.Delete(ski)
}

package keyopts

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mr-shifu/k1-lib/pkg/common/keyopts"
)

var (
	ErrInvalidParamsOwner = errors.New("keyopts: invalid owner")
	ErrInvalidParamsKeyID = errors.New("keyopts: invalid keyID")
	ErrKeyNotFound        = errors.New("keyopts: key not found")
)

type Keys map[string]*keyopts.KeyData

type KeyOpts struct {
	lock sync.RWMutex

	// keys maps a key ID to its per-owner metadata.
	keys map[string]Keys
}

var _ keyopts.KeyOpts = (*KeyOpts)(nil)

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]Keys),
	}
}

func keyIDOwner(opts keyopts.Options) (string, string, error) {
	kid, err := stringOpt(opts, keyopts.OptID, ErrInvalidParamsKeyID)
	if err != nil {
		return "", "", err
	}
	owner, err := stringOpt(opts, keyopts.OptOwner, ErrInvalidParamsOwner)
	if err != nil {
		return "", "", err
	}
	return kid, owner, nil
}

func (kr *KeyOpts) Import(ski string, opts keyopts.Options) error {
	if ski == "" {
		return errors.New("keyopts: empty ski")
	}
	kid, owner, err := keyIDOwner(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		kr.keys[kid] = make(Keys)
	}
	kr.keys[kid][owner] = &keyopts.KeyData{
		Owner: owner,
		SKI:   ski,
	}

	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kid, owner, err := keyIDOwner(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	k, ok := kr.keys[kid][owner]
	if !ok {
		return nil, ErrKeyNotFound
	}
	kd := *k
	return &kd, nil
}

func (kr *KeyOpts) GetAll(opts keyopts.Options) (map[string]*keyopts.KeyData, error) {
	kid, err := stringOpt(opts, keyopts.OptID, ErrInvalidParamsKeyID)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	result := make(map[string]*keyopts.KeyData, len(ks))
	for owner, key := range ks {
		kd := *key
		result[owner] = &kd
	}
	return result, nil
}

func (kr *KeyOpts) Referenced(ski string) bool {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	for _, ks := range kr.keys {
		for _, kd := range ks {
			if kd.SKI == ski {
				return true
			}
		}
	}
	return false
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kid, owner, err := keyIDOwner(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	ks, ok := kr.keys[kid]
	if !ok {
		return ErrKeyNotFound
	}
	if _, ok := ks[owner]; !ok {
		return ErrKeyNotFound
	}

	delete(ks, owner)
	if len(ks) == 0 {
		delete(kr.keys, kid)
	}

	return nil
}

func (kr *KeyOpts) DeleteAll(opts keyopts.Options) error {
	kid, err := stringOpt(opts, keyopts.OptID, ErrInvalidParamsKeyID)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		return ErrKeyNotFound
	}
	delete(kr.keys, kid)

	return nil
}

package vault

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mr-shifu/k1-lib/pkg/common/vault"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

var _ vault.Vault = (*InMemoryVault)(nil)

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

func (store *InMemoryVault) Import(keyID string, key []byte) error {
	if keyID == "" {
		return errors.New("vault: empty keyID")
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	if old, ok := store.keys[keyID]; ok {
		zero(old)
	}
	store.keys[keyID] = append([]byte(nil), key...)
	return nil
}

func (store *InMemoryVault) Get(keyID string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[keyID]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), key...), nil
}

func (store *InMemoryVault) Has(keyID string) bool {
	store.lock.RLock()
	defer store.lock.RUnlock()

	_, ok := store.keys[keyID]
	return ok
}

func (store *InMemoryVault) Delete(keyID string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	key, ok := store.keys[keyID]
	if !ok {
		return ErrKeyNotFound
	}
	zero(key)
	delete(store.keys, keyID)
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package vault

// Vault holds opaque key material by key identifier.
type Vault interface {
	// Import stores a copy of key under keyID, replacing any previous value.
	Import(keyID string, key []byte) error

	// Get returns a copy of the stored key. The caller owns the copy.
	Get(keyID string) ([]byte, error)

	// Has reports whether keyID is stored without copying the key out.
	Has(keyID string) bool

	// Delete zeroes and removes the stored key.
	Delete(keyID string) error
}

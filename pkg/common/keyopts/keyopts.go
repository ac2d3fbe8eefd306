package keyopts

// Option names understood by KeyOpts implementations.
const (
	OptID    = "id"
	OptOwner = "owner"
)

// KeyData links a stored key to its owner.
type KeyData struct {
	Owner string
	SKI   string
}

type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the metadata of keys referred to by a key ID. A key ID may
// hold one entry per owner.
type KeyOpts interface {
	// Import records ski under the "id" and "owner" options.
	Import(ski string, opts Options) error

	// Get returns the metadata for "id" and "owner".
	Get(opts Options) (*KeyData, error)

	// GetAll returns every owner's metadata for "id".
	GetAll(opts Options) (map[string]*KeyData, error)

	// Referenced reports whether any entry still points at ski.
	Referenced(ski string) bool

	Delete(opts Options) error

	// DeleteAll removes every owner's metadata for "id".
	DeleteAll(opts Options) error
}

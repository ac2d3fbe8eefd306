// Package keymanager stores secp256k1 keys in a keystore and hands them back
// as typed values.
package keymanager

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mr-shifu/k1-lib/pkg/common/keymanager"
	"github.com/mr-shifu/k1-lib/pkg/common/keyopts"
	"github.com/mr-shifu/k1-lib/pkg/common/keystore"
	"github.com/mr-shifu/k1-lib/pkg/k1"
	opts_impl "github.com/mr-shifu/k1-lib/pkg/keyopts"
)

// DefaultOwner is used when the options carry no "owner".
const DefaultOwner = "self"

type Config struct {
	// Factory builds keys. Defaults to k1.Default().
	Factory *k1.Factory

	Logger *zap.Logger
}

type K1KeyManagerImpl struct {
	keystore keystore.Keystore
	factory  *k1.Factory
	log      *zap.Logger
}

var _ keymanager.K1KeyManager = (*K1KeyManagerImpl)(nil)

func NewK1KeyManager(store keystore.Keystore, cfg *Config) *K1KeyManagerImpl {
	mgr := &K1KeyManagerImpl{
		keystore: store,
		factory:  k1.Default(),
		log:      zap.NewNop(),
	}
	if cfg != nil {
		if cfg.Factory != nil {
			mgr.factory = cfg.Factory
		}
		if cfg.Logger != nil {
			mgr.log = cfg.Logger
		}
	}
	return mgr
}

func (mgr *K1KeyManagerImpl) GenerateKey(opts keyopts.Options) (keymanager.K1Key, error) {
	priv, err := mgr.factory.GeneratePrivateKey()
	if err != nil {
		return nil, errors.WithMessage(err, "keymanager: failed to generate key")
	}

	key := NewPrivateKey(priv)
	if err := mgr.store(key, opts); err != nil {
		key.Zero()
		return nil, err
	}
	return key, nil
}

func (mgr *K1KeyManagerImpl) ImportKey(raw interface{}, opts keyopts.Options) (keymanager.K1Key, error) {
	var key *K1KeyImpl

	switch raw := raw.(type) {
	case []byte:
		k, err := fromBytes(mgr.factory, raw)
		if err != nil {
			return nil, errors.WithMessage(err, "keymanager: failed to decode key record")
		}
		key = k
	case *k1.PrivateKey:
		if raw == nil {
			return nil, ErrInvalidKey
		}
		key = NewPrivateKey(raw)
	case k1.PublicKey:
		if raw.IsZero() {
			return nil, ErrInvalidKey
		}
		key = NewPublicKey(raw)
	case *K1KeyImpl:
		if raw == nil {
			return nil, ErrInvalidKey
		}
		key = raw
	default:
		return nil, errors.WithMessagef(ErrInvalidKey, "unsupported key type %T", raw)
	}

	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}
	return key, nil
}

func (mgr *K1KeyManagerImpl) ImportEncoded(data []byte, r k1.Representation, private bool, opts keyopts.Options) (keymanager.K1Key, error) {
	if private {
		priv, err := mgr.factory.ParsePrivateKey(data, r)
		if err != nil {
			return nil, errors.WithMessagef(err, "keymanager: failed to parse %s private key", r)
		}
		return mgr.ImportKey(priv, opts)
	}

	pub, err := mgr.factory.ParsePublicKey(data, r)
	if err != nil {
		return nil, errors.WithMessagef(err, "keymanager: failed to parse %s public key", r)
	}
	return mgr.ImportKey(pub, opts)
}

func (mgr *K1KeyManagerImpl) GetKey(opts keyopts.Options) (keymanager.K1Key, error) {
	ref, err := keyRef(opts)
	if err != nil {
		return nil, err
	}

	decoded, err := mgr.keystore.Get(ref)
	if err != nil {
		return nil, errors.WithMessage(err, "keymanager: failed to get key from keystore")
	}
	defer zero(decoded)

	key, err := fromBytes(mgr.factory, decoded)
	if err != nil {
		return nil, errors.WithMessage(err, "keymanager: failed to decode stored key")
	}
	return key, nil
}

func (mgr *K1KeyManagerImpl) ExportKey(r k1.Representation, opts keyopts.Options) ([]byte, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	return key.Export(r)
}

func (mgr *K1KeyManagerImpl) DeleteKey(opts keyopts.Options) error {
	if opts == nil {
		return opts_impl.ErrInvalidParamsKeyID
	}

	if _, ok := opts.Get(keyopts.OptOwner); !ok {
		if err := mgr.keystore.DeleteAll(opts); err != nil {
			return errors.WithMessage(err, "keymanager: failed to delete keys")
		}
		mgr.log.Debug("keys deleted", zap.Any("id", idOf(opts)))
		return nil
	}

	if err := mgr.keystore.Delete(opts); err != nil {
		return errors.WithMessage(err, "keymanager: failed to delete key")
	}
	mgr.log.Debug("key deleted", zap.Any("id", idOf(opts)))
	return nil
}

// store writes the record under the hex SKI. A missing "id" is set on opts
// so the caller can read it back, which needs a non-nil opts.
func (mgr *K1KeyManagerImpl) store(key *K1KeyImpl, opts keyopts.Options) error {
	if opts == nil {
		return opts_impl.ErrInvalidParamsKeyID
	}
	if _, ok := opts.Get(keyopts.OptID); !ok {
		if _, err := opts.Set(keyopts.OptID, uuid.NewString()); err != nil {
			return err
		}
	}
	ref, err := keyRef(opts)
	if err != nil {
		return err
	}

	kb, err := key.Bytes()
	if err != nil {
		return errors.WithMessage(err, "keymanager: failed to encode key")
	}
	defer zero(kb)

	ski := hex.EncodeToString(key.SKI())
	if err := mgr.keystore.KeyAccessor(ski, ref).Import(kb); err != nil {
		return errors.WithMessage(err, "keymanager: failed to import key to keystore")
	}

	mgr.log.Debug("key stored",
		zap.Any("id", idOf(ref)),
		zap.Any("owner", ownerOf(ref)),
		zap.String("ski", ski),
		zap.Bool("private", key.Private()),
	)
	return nil
}

// keyRef copies "id" and "owner" into fresh options, defaulting the owner,
// so lookups never modify the caller's options.
func keyRef(opts keyopts.Options) (keyopts.Options, error) {
	if opts == nil {
		return nil, opts_impl.ErrInvalidParamsKeyID
	}
	id, ok := opts.Get(keyopts.OptID)
	if !ok {
		return nil, opts_impl.ErrInvalidParamsKeyID
	}
	owner, ok := opts.Get(keyopts.OptOwner)
	if !ok {
		owner = DefaultOwner
	}
	return opts_impl.NewOptions().Set(keyopts.OptID, id, keyopts.OptOwner, owner)
}

func idOf(opts keyopts.Options) interface{} {
	id, _ := opts.Get(keyopts.OptID)
	return id
}

func ownerOf(opts keyopts.Options) interface{} {
	owner, _ := opts.Get(keyopts.OptOwner)
	return owner
}

package keymanager

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/k1-lib/core/keyerr"
	"github.com/mr-shifu/k1-lib/pkg/k1"
	"github.com/mr-shifu/k1-lib/pkg/keyopts"
	"github.com/mr-shifu/k1-lib/pkg/keystore"
	"github.com/mr-shifu/k1-lib/pkg/vault"
)

func newK1KeyManager() *K1KeyManagerImpl {
	k1_vault := vault.NewInMemoryVault()
	k1_kr := keyopts.NewInMemoryKeyOpts()
	ks := keystore.NewInMemoryKeystore(k1_vault, k1_kr)
	return NewK1KeyManager(ks, nil)
}

func TestGenerateKey(t *testing.T) {
	mgr := newK1KeyManager()

	opts, err := keyopts.NewOptions().Set("id", "123", "owner", "1")
	assert.NoError(t, err)

	// Must generate a new key successfully
	key, err := mgr.GenerateKey(opts)
	assert.NoError(t, err)
	assert.NotNil(t, key)
	assert.True(t, key.Private())
	kb, err := key.Bytes()
	assert.NoError(t, err)

	// Must retrieve the same key
	newKey, err := mgr.GetKey(opts)
	assert.NoError(t, err)
	newkb, err := newKey.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, kb, newkb)
	assert.Equal(t, key.SKI(), newKey.SKI())
	assert.True(t, key.PrivateKeyRaw().Equal(newKey.PrivateKeyRaw()))
}

func TestGenerateKeyAssignsID(t *testing.T) {
	mgr := newK1KeyManager()

	opts := keyopts.NewOptions()
	key, err := mgr.GenerateKey(opts)
	require.NoError(t, err)

	id, ok := opts.Get("id")
	require.True(t, ok)
	_, err = uuid.Parse(id.(string))
	assert.NoError(t, err)

	// owner defaults on both store and lookup
	_, hasOwner := opts.Get("owner")
	assert.False(t, hasOwner)
	got, err := mgr.GetKey(opts)
	require.NoError(t, err)
	assert.Equal(t, key.SKI(), got.SKI())

	got, err = mgr.GetKey(keyopts.Options{"id": id, "owner": DefaultOwner})
	require.NoError(t, err)
	assert.Equal(t, key.SKI(), got.SKI())
}

func TestNilOptionsRejected(t *testing.T) {
	mgr := newK1KeyManager()

	key, err := mgr.GenerateKey(nil)
	assert.ErrorIs(t, err, keyopts.ErrInvalidParamsKeyID)
	assert.Nil(t, key)

	priv, err := k1.GeneratePrivateKey()
	require.NoError(t, err)
	key, err = mgr.ImportKey(priv, nil)
	assert.ErrorIs(t, err, keyopts.ErrInvalidParamsKeyID)
	assert.Nil(t, key)

	// nothing reached the keystore
	_, err = mgr.GetKey(keyopts.Options{"id": "", "owner": DefaultOwner})
	assert.Error(t, err)
}

func TestImportPrivateKey(t *testing.T) {
	mgr := newK1KeyManager()

	priv, err := k1.GeneratePrivateKey()
	require.NoError(t, err)

	opts, err := keyopts.NewOptions().Set("id", "123", "owner", "1")
	assert.NoError(t, err)

	_, err = mgr.ImportKey(priv, opts)
	assert.NoError(t, err)

	newKey, err := mgr.GetKey(opts)
	assert.NoError(t, err)
	assert.True(t, newKey.Private())
	assert.True(t, priv.Equal(newKey.PrivateKeyRaw()))
	assert.True(t, priv.PublicKey().Equal(newKey.PublicKeyRaw()))
}

func TestImportPublicKey(t *testing.T) {
	mgr := newK1KeyManager()

	priv, err := k1.GeneratePrivateKey()
	require.NoError(t, err)

	opts, err := keyopts.NewOptions().Set("id", "123", "owner", "peer")
	assert.NoError(t, err)

	key, err := mgr.ImportKey(priv.PublicKey(), opts)
	require.NoError(t, err)
	assert.False(t, key.Private())
	assert.Nil(t, key.PrivateKeyRaw())

	newKey, err := mgr.GetKey(opts)
	require.NoError(t, err)
	assert.False(t, newKey.Private())
	assert.True(t, priv.PublicKey().Equal(newKey.PublicKeyRaw()))

	_, err = mgr.ImportKey(k1.PublicKey{}, opts)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = mgr.ImportKey("not a key", opts)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestImportRecord(t *testing.T) {
	mgr := newK1KeyManager()

	priv, err := k1.GeneratePrivateKey()
	require.NoError(t, err)
	record, err := NewPrivateKey(priv).Bytes()
	require.NoError(t, err)

	opts, err := keyopts.NewOptions().Set("id", "rec")
	require.NoError(t, err)
	key, err := mgr.ImportKey(record, opts)
	require.NoError(t, err)
	assert.True(t, priv.Equal(key.PrivateKeyRaw()))

	// a record whose public key belongs to another scalar
	other, err := k1.GeneratePrivateKey()
	require.NoError(t, err)
	bad, err := cbor.Marshal(&rawK1Key{
		Curve: "secp256k1",
		Priv:  priv.Raw(),
		Pub:   other.PublicKey().Compressed(),
	})
	require.NoError(t, err)
	_, err = mgr.ImportKey(bad, opts)
	assert.ErrorIs(t, err, keyerr.ErrConsistency)

	wrongCurve, err := cbor.Marshal(&rawK1Key{Curve: "P-256", Pub: priv.PublicKey().Compressed()})
	require.NoError(t, err)
	_, err = mgr.ImportKey(wrongCurve, opts)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = mgr.ImportKey([]byte{0xff}, opts)
	assert.ErrorIs(t, err, keyerr.ErrStructure)
}

func TestImportEncodedAndExport(t *testing.T) {
	mgr := newK1KeyManager()

	priv, err := k1.GeneratePrivateKey()
	require.NoError(t, err)

	opts, err := keyopts.NewOptions().Set("id", "pem")
	require.NoError(t, err)
	_, err = mgr.ImportEncoded([]byte(priv.SEC1PEM()), k1.RepresentationPEM, true, opts)
	require.NoError(t, err)

	der, err := mgr.ExportKey(k1.RepresentationDER, opts)
	require.NoError(t, err)
	assert.Equal(t, priv.DER(), der)

	_, err = mgr.ExportKey(k1.RepresentationCompressed, opts)
	assert.ErrorIs(t, err, k1.ErrUnsupportedRepresentation)

	pubOpts, err := keyopts.NewOptions().Set("id", "pub")
	require.NoError(t, err)
	_, err = mgr.ImportEncoded(priv.PublicKey().Compressed(), k1.RepresentationCompressed, false, pubOpts)
	require.NoError(t, err)

	pem, err := mgr.ExportKey(k1.RepresentationPEM, pubOpts)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().PEM(), string(pem))

	_, err = mgr.ImportEncoded([]byte{1, 2, 3}, k1.RepresentationX963, true, opts)
	assert.ErrorIs(t, err, keyerr.ErrSize)
}

func TestDeleteKey(t *testing.T) {
	mgr := newK1KeyManager()

	for _, owner := range []string{"alice", "bob"} {
		opts, err := keyopts.NewOptions().Set("id", "shared", "owner", owner)
		require.NoError(t, err)
		_, err = mgr.GenerateKey(opts)
		require.NoError(t, err)
	}

	alice := keyopts.Options{"id": "shared", "owner": "alice"}
	bob := keyopts.Options{"id": "shared", "owner": "bob"}

	assert.NoError(t, mgr.DeleteKey(alice))
	_, err := mgr.GetKey(alice)
	assert.ErrorIs(t, err, keyopts.ErrKeyNotFound)
	_, err = mgr.GetKey(bob)
	assert.NoError(t, err)

	assert.NoError(t, mgr.DeleteKey(keyopts.Options{"id": "shared"}))
	_, err = mgr.GetKey(bob)
	assert.ErrorIs(t, err, keyopts.ErrKeyNotFound)

	assert.Error(t, mgr.DeleteKey(nil))
	assert.Error(t, mgr.DeleteKey(keyopts.Options{"id": "shared"}))
}

func TestPublicKeyPart(t *testing.T) {
	priv, err := k1.GeneratePrivateKey()
	require.NoError(t, err)

	key := NewPrivateKey(priv)
	pub := key.PublicKey()
	assert.False(t, pub.Private())
	assert.Equal(t, key.SKI(), pub.SKI())

	exported, err := pub.Export(k1.RepresentationUncompressed)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Uncompressed(), exported)
}

package k1

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/mr-shifu/k1-lib/core/asn1"
	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goldenCompressed   = "020202020202020202020202020202020202020202020202020202020202020202"
	goldenUncompressed = "04" +
		"0202020202020202020202020202020202020202020202020202020202020202" +
		"415456f0fc01d66476251cab4525d9db70bfec652b2d8130608675674cde64b2"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestPublicKeyGoldenVector(t *testing.T) {
	pk, err := PublicKeyFromCompressed(mustHex(t, goldenCompressed))
	require.NoError(t, err)

	assert.Equal(t, goldenUncompressed, hex.EncodeToString(pk.Uncompressed()))
	assert.Equal(t, goldenUncompressed, hex.EncodeToString(pk.X963()))
	assert.Equal(t, goldenUncompressed[2:], hex.EncodeToString(pk.Raw()))
	assert.Equal(t, goldenCompressed, hex.EncodeToString(pk.Compressed()))
	assert.Equal(t, goldenCompressed, pk.String())

	back, err := PublicKeyFromUncompressed(pk.Uncompressed())
	require.NoError(t, err)
	assert.Equal(t, goldenCompressed, hex.EncodeToString(back.Compressed()))
}

func TestPublicKeyRoundTrip(t *testing.T) {
	k, err := GeneratePrivateKey()
	require.NoError(t, err)
	pk := k.PublicKey()

	for _, r := range []Representation{
		RepresentationRaw,
		RepresentationCompressed,
		RepresentationUncompressed,
		RepresentationX963,
		RepresentationDER,
		RepresentationPEM,
	} {
		encoded, err := pk.Encode(r)
		require.NoError(t, err, r.String())

		again, err := pk.Encode(r)
		require.NoError(t, err)
		assert.Equal(t, encoded, again, r.String())

		decoded, err := ParsePublicKey(encoded, r)
		require.NoError(t, err, r.String())
		assert.True(t, pk.Equal(decoded), r.String())

		reencoded, err := decoded.Encode(r)
		require.NoError(t, err)
		assert.Equal(t, encoded, reencoded, r.String())
	}
}

func TestPublicKeyFromDERCompressedPoint(t *testing.T) {
	pk, err := PublicKeyFromCompressed(mustHex(t, goldenCompressed))
	require.NoError(t, err)

	der := asn1.SubjectPublicKeyInfo{PublicKey: pk.Compressed()}.Marshal()
	decoded, err := PublicKeyFromDER(der)
	require.NoError(t, err)
	assert.True(t, pk.Equal(decoded))
}

func TestPublicKeySizeErrors(t *testing.T) {
	cases := []struct {
		name     string
		parse    func([]byte) (PublicKey, error)
		expected int
	}{
		{"raw", PublicKeyFromRaw, curve.RawPublicByteCount},
		{"compressed", PublicKeyFromCompressed, curve.CompressedByteCount},
		{"uncompressed", PublicKeyFromUncompressed, curve.UncompressedByteCount},
		{"x963", PublicKeyFromX963, curve.UncompressedByteCount},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.parse([]byte{0x04, 0x01})
			require.ErrorIs(t, err, keyerr.ErrSize)

			var e *keyerr.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, c.expected, e.Expected)
			assert.Equal(t, 2, e.Actual)
		})
	}
}

func TestPublicKeyOffCurve(t *testing.T) {
	raw := make([]byte, curve.UncompressedByteCount)
	raw[0] = curve.TagUncompressed
	raw[curve.UncompressedByteCount-1] = 0x01

	_, err := PublicKeyFromUncompressed(raw)
	assert.ErrorIs(t, err, keyerr.ErrCurveMembership)
	assert.ErrorIs(t, err, keyerr.ErrPublicKeyParse)

	_, err = PublicKeyFromRaw(raw[1:])
	assert.ErrorIs(t, err, keyerr.ErrCurveMembership)

	// 7 is not a square mod p, so no point has x = 0.
	comp := make([]byte, curve.CompressedByteCount)
	comp[0] = curve.TagCompressedEven
	_, err = PublicKeyFromCompressed(comp)
	assert.ErrorIs(t, err, keyerr.ErrCurveMembership)
}

func TestPublicKeyWrongTag(t *testing.T) {
	pk, err := PublicKeyFromCompressed(mustHex(t, goldenCompressed))
	require.NoError(t, err)

	unc := pk.Uncompressed()
	unc[0] = curve.TagCompressedEven
	_, err = PublicKeyFromUncompressed(unc)
	assert.ErrorIs(t, err, keyerr.ErrCurveMembership)

	// a compressed point does not fit the uncompressed length check
	_, err = PublicKeyFromUncompressed(pk.Compressed())
	assert.ErrorIs(t, err, keyerr.ErrSize)
}

func TestPublicKeyPEMLabel(t *testing.T) {
	k, err := GeneratePrivateKey()
	require.NoError(t, err)

	_, err = PublicKeyFromPEM(k.PEM())
	assert.ErrorIs(t, err, keyerr.ErrStructure)

	_, err = PublicKeyFromPEM("not a pem document")
	assert.ErrorIs(t, err, keyerr.ErrStructure)

	_, err = PublicKeyFromDER(bytes.Repeat([]byte{0x30}, 4))
	assert.ErrorIs(t, err, keyerr.ErrStructure)
}

func TestPublicKeyValueSemantics(t *testing.T) {
	var zero PublicKey
	assert.True(t, zero.IsZero())

	pk, err := PublicKeyFromCompressed(mustHex(t, goldenCompressed))
	require.NoError(t, err)
	assert.False(t, pk.IsZero())

	out := pk.Compressed()
	out[1] = 0xff
	assert.Equal(t, goldenCompressed, hex.EncodeToString(pk.Compressed()))

	other, err := GeneratePrivateKey()
	require.NoError(t, err)
	assert.False(t, pk.Equal(other.PublicKey()))
}

func TestRepresentationNames(t *testing.T) {
	for _, name := range []string{"raw", "compressed", "uncompressed", "x963", "der", "pem"} {
		r, err := ParseRepresentation(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.String())
	}

	r, err := ParseRepresentation(" PEM ")
	require.NoError(t, err)
	assert.Equal(t, RepresentationPEM, r)
	assert.False(t, r.Binary())
	assert.True(t, RepresentationDER.Binary())

	_, err = ParseRepresentation("jwk")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Representation(0).String())
}

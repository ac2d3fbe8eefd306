// Package k1 provides secp256k1 private and public key values that can be
// imported from and exported to raw, compressed, uncompressed, X9.63, DER
// and PEM encodings.
package k1

import (
	"crypto/rand"
	"io"

	"github.com/mr-shifu/k1-lib/core/bridge"
	"go.uber.org/zap"
)

type Config struct {
	// Bridge drives the curve engine. Defaults to bridge.Default().
	Bridge *bridge.Bridge

	// Rand is the source for new private keys. Defaults to crypto/rand.
	Rand io.Reader

	Logger *zap.Logger
}

// Factory constructs keys through one bridge and randomness source.
type Factory struct {
	bridge *bridge.Bridge
	rand   io.Reader
	log    *zap.Logger
}

func NewFactory(cfg *Config) *Factory {
	f := &Factory{
		bridge: bridge.Default(),
		rand:   rand.Reader,
		log:    zap.NewNop(),
	}
	if cfg == nil {
		return f
	}
	if cfg.Bridge != nil {
		f.bridge = cfg.Bridge
	}
	if cfg.Rand != nil {
		f.rand = cfg.Rand
	}
	if cfg.Logger != nil {
		f.log = cfg.Logger
	}
	return f
}

var defaultFactory = NewFactory(nil)

func Default() *Factory {
	return defaultFactory
}

func GeneratePrivateKey() (*PrivateKey, error) {
	return defaultFactory.GeneratePrivateKey()
}

func PrivateKeyFromRaw(b []byte) (*PrivateKey, error) {
	return defaultFactory.PrivateKeyFromRaw(b)
}

func PrivateKeyFromX963(b []byte) (*PrivateKey, error) {
	return defaultFactory.PrivateKeyFromX963(b)
}

func PrivateKeyFromDER(der []byte) (*PrivateKey, error) {
	return defaultFactory.PrivateKeyFromDER(der)
}

func PrivateKeyFromPEM(s string) (*PrivateKey, error) {
	return defaultFactory.PrivateKeyFromPEM(s)
}

func ParsePrivateKey(data []byte, r Representation) (*PrivateKey, error) {
	return defaultFactory.ParsePrivateKey(data, r)
}

func PublicKeyFromRaw(b []byte) (PublicKey, error) {
	return defaultFactory.PublicKeyFromRaw(b)
}

func PublicKeyFromCompressed(b []byte) (PublicKey, error) {
	return defaultFactory.PublicKeyFromCompressed(b)
}

func PublicKeyFromUncompressed(b []byte) (PublicKey, error) {
	return defaultFactory.PublicKeyFromUncompressed(b)
}

func PublicKeyFromX963(b []byte) (PublicKey, error) {
	return defaultFactory.PublicKeyFromX963(b)
}

func PublicKeyFromDER(der []byte) (PublicKey, error) {
	return defaultFactory.PublicKeyFromDER(der)
}

func PublicKeyFromPEM(s string) (PublicKey, error) {
	return defaultFactory.PublicKeyFromPEM(s)
}

func ParsePublicKey(data []byte, r Representation) (PublicKey, error) {
	return defaultFactory.ParsePublicKey(data, r)
}

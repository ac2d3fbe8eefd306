package asn1

import (
	"bytes"
	"encoding/pem"

	"github.com/mr-shifu/k1-lib/core/keyerr"
)

const (
	// LabelPrivateKey marks a PKCS#8 body.
	LabelPrivateKey = "PRIVATE KEY"
	// LabelECPrivateKey marks a bare SEC1 body.
	LabelECPrivateKey = "EC PRIVATE KEY"
	LabelPublicKey    = "PUBLIC KEY"
)

// PEMDocument is a single labelled PEM block.
type PEMDocument struct {
	Type string
	DER  []byte
}

// ParsePEMDocument decodes exactly one PEM block. Headers and trailing
// content are rejected.
func ParsePEMDocument(s string) (PEMDocument, error) {
	block, rest := pem.Decode([]byte(s))
	if block == nil {
		return PEMDocument{}, keyerr.Structure("pem: no valid PEM block", nil)
	}
	if len(block.Headers) != 0 {
		return PEMDocument{}, keyerr.Structure("pem: headers are not supported", nil)
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return PEMDocument{}, keyerr.Structure("pem: trailing data after block", nil)
	}
	return PEMDocument{Type: block.Type, DER: block.Bytes}, nil
}

func (d PEMDocument) String() string {
	return string(pem.EncodeToMemory(&pem.Block{Type: d.Type, Bytes: d.DER}))
}

// ParsePrivateKeyDER decodes a private key container of unknown kind. It
// tries PKCS#8 first and falls back to SEC1; when both fail the SEC1 error
// is returned.
func ParsePrivateKeyDER(der []byte) (SEC1PrivateKey, error) {
	if k, err := ParsePKCS8PrivateKey(der); err == nil {
		return k.PrivateKey, nil
	}
	return ParseSEC1PrivateKey(der)
}

// ParsePrivateKeyPEM picks the inner parser from the document label.
func ParsePrivateKeyPEM(doc PEMDocument) (SEC1PrivateKey, error) {
	switch doc.Type {
	case LabelECPrivateKey:
		return ParseSEC1PrivateKey(doc.DER)
	case LabelPrivateKey:
		k, err := ParsePKCS8PrivateKey(doc.DER)
		if err != nil {
			return SEC1PrivateKey{}, err
		}
		return k.PrivateKey, nil
	default:
		return SEC1PrivateKey{}, keyerr.Structure("pem: unsupported private key label "+doc.Type, nil)
	}
}

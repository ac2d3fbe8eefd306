package bridge

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/zeebo/blake3"
)

const blindingDomain = "k1-lib 2024 context blinding"

// DecredEngine implements Engine on top of the decred secp256k1 package.
//
// Randomization installs a blinding scalar b. Public keys are then computed
// as (k+b)*G + (-b)*G so the secret scalar never drives a base
// multiplication directly.
type DecredEngine struct{}

var _ Engine = DecredEngine{}

type decredContext struct {
	blind secp256k1.ModNScalar
}

func (DecredEngine) ContextCreate() Handle {
	return &decredContext{}
}

func (DecredEngine) ContextRandomize(h Handle, seed []byte) Status {
	c, ok := h.(*decredContext)
	if !ok || len(seed) != curve.FieldByteCount {
		return StatusFailure
	}

	var buf [curve.FieldByteCount]byte
	defer zero(buf[:])
	blake3.DeriveKey(blindingDomain, seed, buf[:])

	// reduction mod n is fine for a blinding value
	c.blind.SetBytes(&buf)
	if c.blind.IsZero() {
		return StatusFailure
	}
	return StatusSuccess
}

func (DecredEngine) ContextDestroy(h Handle) {
	if c, ok := h.(*decredContext); ok {
		c.blind.Zero()
	}
}

func (DecredEngine) PubkeyParse(h Handle, out *Point, input []byte) Status {
	if _, ok := h.(*decredContext); !ok || out == nil {
		return StatusFailure
	}
	pk, err := secp256k1.ParsePubKey(input)
	if err != nil {
		return StatusFailure
	}
	copy(out.raw[:], pk.SerializeUncompressed()[1:])
	return StatusSuccess
}

func (DecredEngine) PubkeyCreate(h Handle, out *Point, seckey []byte) Status {
	c, ok := h.(*decredContext)
	if !ok || out == nil || !curve.IsValidScalar(seckey) {
		return StatusFailure
	}

	var k, kb, nb secp256k1.ModNScalar
	defer k.Zero()
	defer kb.Zero()
	defer nb.Zero()
	k.SetByteSlice(seckey)

	kb.Set(&k).Add(&c.blind)
	nb.NegateVal(&c.blind)

	var p1, p2, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&kb, &p1)
	secp256k1.ScalarBaseMultNonConst(&nb, &p2)
	secp256k1.AddNonConst(&p1, &p2, &sum)
	if sum.Z.IsZero() {
		return StatusFailure
	}
	sum.ToAffine()

	sum.X.PutBytesUnchecked(out.raw[:curve.FieldByteCount])
	sum.Y.PutBytesUnchecked(out.raw[curve.FieldByteCount:])
	return StatusSuccess
}

func (DecredEngine) PubkeySerialize(h Handle, out []byte, outLen *int, p *Point, format Format) Status {
	if _, ok := h.(*decredContext); !ok || p == nil || outLen == nil {
		return StatusFailure
	}

	var x, y secp256k1.FieldVal
	if x.SetByteSlice(p.raw[:curve.FieldByteCount]) || y.SetByteSlice(p.raw[curve.FieldByteCount:]) {
		return StatusFailure
	}
	pk := secp256k1.NewPublicKey(&x, &y)
	if !pk.IsOnCurve() {
		return StatusFailure
	}

	var ser []byte
	switch format {
	case FormatCompressed:
		ser = pk.SerializeCompressed()
	case FormatUncompressed:
		ser = pk.SerializeUncompressed()
	default:
		return StatusFailure
	}
	if *outLen < len(ser) || len(out) < len(ser) {
		return StatusFailure
	}
	*outLen = copy(out, ser)
	return StatusSuccess
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

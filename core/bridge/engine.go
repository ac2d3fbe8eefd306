package bridge

import "github.com/mr-shifu/k1-lib/core/curve"

// Status is the result code of an engine call.
type Status int

const (
	StatusFailure Status = 0
	StatusSuccess Status = 1
)

// Format selects the octet encoding of a serialized point.
type Format int

const (
	FormatCompressed Format = iota
	FormatUncompressed
)

// Len returns the fixed byte count of the format.
func (f Format) Len() int {
	if f == FormatCompressed {
		return curve.CompressedByteCount
	}
	return curve.UncompressedByteCount
}

func (f Format) String() string {
	if f == FormatCompressed {
		return "compressed"
	}
	return "uncompressed"
}

// Handle is an engine-owned context. Only the engine that created it may
// interpret it.
type Handle interface{}

// Point is a curve point in the engine's in-memory form, the 64-byte X||Y
// concatenation. Its contents are never exposed outside this package.
type Point struct {
	raw [curve.RawPublicByteCount]byte
}

func (p Point) Equal(q Point) bool {
	return p.raw == q.raw
}

// Engine is the curve arithmetic backend. It follows the libsecp256k1 call
// shape: outputs are written through pointers and every call reports a
// Status.
type Engine interface {
	// ContextCreate allocates a context. A nil handle means failure.
	ContextCreate() Handle

	// ContextRandomize installs fresh blinding derived from a 32-byte seed.
	ContextRandomize(h Handle, seed []byte) Status

	ContextDestroy(h Handle)

	// PubkeyParse decodes a compressed or uncompressed point.
	PubkeyParse(h Handle, out *Point, input []byte) Status

	// PubkeyCreate computes seckey*G.
	PubkeyCreate(h Handle, out *Point, seckey []byte) Status

	// PubkeySerialize writes p into out. On entry *outLen is len(out), on
	// return the number of bytes written.
	PubkeySerialize(h Handle, out []byte, outLen *int, p *Point, format Format) Status
}

// Package bridge is the single point of contact with the curve arithmetic
// engine. It owns engine contexts, randomizes them before use and turns
// engine status codes into keyerr errors.
package bridge

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/mr-shifu/k1-lib/core/curve"
	"github.com/mr-shifu/k1-lib/core/keyerr"
	"github.com/mr-shifu/k1-lib/core/validate"
	"go.uber.org/zap"
)

// Context wraps an engine handle. Randomization and every operation on the
// context hold mu, so they never interleave.
type Context struct {
	mu         sync.Mutex
	engine     Engine
	handle     Handle
	randomized bool
	destroyed  bool
}

// Destroy releases the engine handle. It is safe to call more than once.
func (c *Context) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	c.engine.ContextDestroy(c.handle)
	c.handle = nil
	c.destroyed = true
}

type Bridge struct {
	engine Engine
	rand   io.Reader
	log    *zap.Logger
}

type Option func(*Bridge)

func WithEngine(e Engine) Option {
	return func(b *Bridge) { b.engine = e }
}

// WithRandom sets the source of context randomization seeds.
func WithRandom(r io.Reader) Option {
	return func(b *Bridge) { b.rand = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

func New(opts ...Option) *Bridge {
	b := &Bridge{
		engine: DecredEngine{},
		rand:   rand.Reader,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBridge = New()

// Default returns the process-wide bridge backed by DecredEngine.
func Default() *Bridge {
	return defaultBridge
}

// call runs one engine call and maps its status. Any status other than
// success or failure is reported as an unexpected engine result.
func (b *Bridge) call(reason keyerr.Reason, fn func() Status) error {
	switch status := fn(); status {
	case StatusSuccess:
		return nil
	case StatusFailure:
		b.log.Debug("engine call failed", zap.String("reason", string(reason)))
		return keyerr.Engine(reason, "")
	default:
		b.log.Warn("unexpected engine status",
			zap.String("reason", string(reason)),
			zap.Int("status", int(status)))
		return keyerr.Engine(keyerr.ReasonUnexpectedEngineResult,
			fmt.Sprintf("%s returned status %d", reason, status))
	}
}

func (b *Bridge) CreateContext() (*Context, error) {
	h := b.engine.ContextCreate()
	if h == nil {
		return nil, keyerr.Engine(keyerr.ReasonCreateContext, "engine returned no context")
	}
	b.log.Debug("engine context created")
	return &Context{engine: b.engine, handle: h}, nil
}

// RandomizeContext installs fresh blinding from a 32-byte seed. It must
// succeed before the context can be used.
func (b *Bridge) RandomizeContext(ctx *Context, seed []byte) error {
	if len(seed) != curve.FieldByteCount {
		return keyerr.Size("context seed", curve.FieldByteCount, len(seed))
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if ctx.destroyed {
		return keyerr.Engine(keyerr.ReasonRandomizeContext, "context destroyed")
	}
	ctx.randomized = false
	if err := b.call(keyerr.ReasonRandomizeContext, func() Status {
		return b.engine.ContextRandomize(ctx.handle, seed)
	}); err != nil {
		return err
	}
	ctx.randomized = true
	return nil
}

// use runs fn with ctx locked, refusing destroyed or unrandomized contexts.
func (b *Bridge) use(ctx *Context, reason keyerr.Reason, fn func(h Handle) error) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if ctx.destroyed {
		return &keyerr.Error{Kind: keyerr.KindEngine, Reason: reason, Msg: "context destroyed"}
	}
	if !ctx.randomized {
		return keyerr.Engine(keyerr.ReasonRandomizeContext, "context used before randomization")
	}
	return fn(ctx.handle)
}

// ParsePublicKey decodes a compressed or uncompressed point. The tag byte
// and curve membership are checked by the engine.
func (b *Bridge) ParsePublicKey(ctx *Context, raw []byte) (Point, error) {
	var p Point
	err := b.use(ctx, keyerr.ReasonPublicKeyParse, func(h Handle) error {
		return b.call(keyerr.ReasonPublicKeyParse, func() Status {
			return b.engine.PubkeyParse(h, &p, raw)
		})
	})
	if err != nil {
		return Point{}, err
	}
	return p, nil
}

// SerializePublicKey encodes p. The engine must write exactly format.Len()
// bytes.
func (b *Bridge) SerializePublicKey(ctx *Context, p Point, format Format) ([]byte, error) {
	out := make([]byte, format.Len())
	n := len(out)
	err := b.use(ctx, keyerr.ReasonSerializePublicKey, func(h Handle) error {
		return b.call(keyerr.ReasonSerializePublicKey, func() Status {
			return b.engine.PubkeySerialize(h, out, &n, &p, format)
		})
	})
	if err != nil {
		return nil, err
	}
	if n != format.Len() {
		return nil, keyerr.Engine(keyerr.ReasonSerializePublicKey,
			fmt.Sprintf("engine wrote %d bytes of %s point, want %d", n, format, format.Len()))
	}
	return out, nil
}

// DerivePublicKey computes the public point of a raw scalar.
func (b *Bridge) DerivePublicKey(ctx *Context, scalar []byte) (Point, error) {
	if err := validate.RawPrivateKey(scalar); err != nil {
		return Point{}, err
	}
	if !b.ValidatePrivateScalar(scalar) {
		return Point{}, keyerr.Range("private scalar must be in (0, n)")
	}

	var p Point
	err := b.use(ctx, keyerr.ReasonComputePublicKey, func(h Handle) error {
		return b.call(keyerr.ReasonComputePublicKey, func() Status {
			return b.engine.PubkeyCreate(h, &p, scalar)
		})
	})
	if err != nil {
		return Point{}, err
	}
	return p, nil
}

// ValidatePrivateScalar reports whether scalar is in (0, n). It needs no
// context.
func (b *Bridge) ValidatePrivateScalar(scalar []byte) bool {
	return curve.IsValidScalar(scalar)
}

// WithContext creates a context, randomizes it from the bridge's random
// source and runs fn. The context is destroyed on every path.
func (b *Bridge) WithContext(fn func(ctx *Context) error) error {
	ctx, err := b.CreateContext()
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	seed := make([]byte, curve.FieldByteCount)
	defer zero(seed)
	if _, err := io.ReadFull(b.rand, seed); err != nil {
		return keyerr.Engine(keyerr.ReasonRandomizeContext, "reading seed: "+err.Error())
	}
	if err := b.RandomizeContext(ctx, seed); err != nil {
		return err
	}
	return fn(ctx)
}

// Parse is ParsePublicKey on a fresh context.
func (b *Bridge) Parse(raw []byte) (p Point, err error) {
	err = b.WithContext(func(ctx *Context) error {
		p, err = b.ParsePublicKey(ctx, raw)
		return err
	})
	return p, err
}

// Serialize is SerializePublicKey on a fresh context.
func (b *Bridge) Serialize(p Point, format Format) (out []byte, err error) {
	err = b.WithContext(func(ctx *Context) error {
		out, err = b.SerializePublicKey(ctx, p, format)
		return err
	})
	return out, err
}

// Derive is DerivePublicKey on a fresh context.
func (b *Bridge) Derive(scalar []byte) (p Point, err error) {
	err = b.WithContext(func(ctx *Context) error {
		p, err = b.DerivePublicKey(ctx, scalar)
		return err
	})
	return p, err
}

package confession

import (
	"context"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

// Engine runs confession circuits. The engine itself holds no state; the
// counter lives in ciphertexts owned by the caller.
type Engine struct {
	gw     *gateway.Gateway
	logger logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an engine backed by gw.
func New(gw *gateway.Gateway, opts ...Option) *Engine {
	e := &Engine{gw: gw, logger: logging.New(nil)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CountedResult is the output of SubmitCounted.
type CountedResult struct {
	// Counter is the incremented counter, bound to the cluster key. The caller
	// must persist it and pass it to the next SubmitCounted.
	Counter gateway.Ciphertext[gateway.U64]
	// Receipt is bound to the submitter's key.
	Receipt gateway.Ciphertext[Receipt]
}

func (e *Engine) begin(ctx context.Context, op string, key gateway.KeyRef) logging.Logger {
	id := mxe.NewInvocationID()
	log := e.logger.With("circuit", "confession."+op, "invocation", id.String())
	log.Debug(ctx, "invocation started", "key", key.String())
	return log
}

// Submit assigns the submission's own timestamp as its identifier and returns
// the receipt to key.
func (e *Engine) Submit(ctx context.Context, in gateway.Ciphertext[Submission], key gateway.KeyRef) (gateway.Ciphertext[Receipt], error) {
	log := e.begin(ctx, "Submit", key)

	sub, err := gateway.Decrypt(e.gw, in, key)
	if err != nil {
		log.Debug(ctx, "decrypt submission failed", "error", err)
		return gateway.Ciphertext[Receipt]{}, err
	}
	return gateway.Encrypt(e.gw, Receipt{Success: true, ID: sub.Timestamp}, key)
}

// InitCounter returns a zero counter bound to the cluster key. Call it once at
// system initialization.
func (e *Engine) InitCounter(ctx context.Context) (gateway.Ciphertext[gateway.U64], error) {
	log := e.begin(ctx, "InitCounter", e.gw.ClusterRef())
	ct, err := gateway.Encrypt(e.gw, gateway.U64(0), e.gw.ClusterRef())
	if err != nil {
		return ct, err
	}
	log.Info(ctx, "counter initialized", "cluster", e.gw.ClusterRef().String())
	return ct, nil
}

// SubmitCounted increments counter by exactly one and uses the new value as
// the identifier. It reads and writes the counter without locking: callers
// must not run two SubmitCounted calls from the same counter value.
func (e *Engine) SubmitCounted(ctx context.Context, in gateway.Ciphertext[Submission], key gateway.KeyRef, counter gateway.Ciphertext[gateway.U64]) (*CountedResult, error) {
	log := e.begin(ctx, "SubmitCounted", key)

	if _, err := gateway.Decrypt(e.gw, in, key); err != nil {
		log.Debug(ctx, "decrypt submission failed", "error", err)
		return nil, err
	}
	current, err := gateway.Decrypt(e.gw, counter, e.gw.ClusterRef())
	if err != nil {
		log.Debug(ctx, "decrypt counter failed", "error", err)
		return nil, err
	}

	next := current + 1

	nextCT, err := gateway.Encrypt(e.gw, next, e.gw.ClusterRef())
	if err != nil {
		return nil, err
	}
	receipt, err := gateway.Encrypt(e.gw, Receipt{Success: true, ID: uint64(next)}, key)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "invocation finished", logging.Redacted("id"))
	return &CountedResult{Counter: nextCT, Receipt: receipt}, nil
}

// Like acknowledges a like on the referenced confession. It always answers
// true and does not check that the identifier was ever issued.
func (e *Engine) Like(ctx context.Context, id gateway.Ciphertext[gateway.U64], key gateway.KeyRef) (gateway.Ciphertext[gateway.Bool], error) {
	log := e.begin(ctx, "Like", key)

	if _, err := gateway.Decrypt(e.gw, id, key); err != nil {
		log.Debug(ctx, "decrypt identifier failed", "error", err)
		return gateway.Ciphertext[gateway.Bool]{}, err
	}
	return gateway.Encrypt(e.gw, gateway.Bool(true), key)
}

package matching

import (
	"context"
	"errors"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

// Engine runs matching circuits against a gateway. It holds no mutable state
// and is safe for concurrent use.
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

// New returns an engine that routes every decryption and encryption through gw.
func New(gw *gateway.Gateway, opts ...Option) *Engine {
	e := &Engine{gw: gw, logger: logging.New(nil)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request carries two encrypted profiles, the keys presented to decrypt them,
// and the keys each party's result is addressed to.
type Request struct {
	ProfileA gateway.Ciphertext[PreferenceProfile]
	ProfileB gateway.Ciphertext[PreferenceProfile]
	KeyA     gateway.KeyRef
	KeyB     gateway.KeyRef
	ToA      gateway.KeyRef
	ToB      gateway.KeyRef
}

// Response holds one result per party. ForA names B as the peer and is
// encrypted to ToA; ForB is the mirror image.
type Response struct {
	ForA gateway.Ciphertext[MatchResult]
	ForB gateway.Ciphertext[MatchResult]
}

// CheckMatch scores the pair with DetailedScore.
func (e *Engine) CheckMatch(ctx context.Context, req *Request) (*Response, error) {
	return e.run(ctx, "CheckMatch", DetailedScore, req)
}

// CheckCoarseMatch scores the pair with CoarseScore.
func (e *Engine) CheckCoarseMatch(ctx context.Context, req *Request) (*Response, error) {
	return e.run(ctx, "CheckCoarseMatch", CoarseScore, req)
}

func (e *Engine) run(ctx context.Context, op string, score Scorer, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("matching: nil request")
	}
	id := mxe.NewInvocationID()
	log := e.logger.With("circuit", "matching."+op, "invocation", id.String())
	log.Debug(ctx, "invocation started",
		"key_a", req.KeyA.String(), "key_b", req.KeyB.String(),
		"to_a", req.ToA.String(), "to_b", req.ToB.String())

	a, err := gateway.Decrypt(e.gw, req.ProfileA, req.KeyA)
	if err != nil {
		log.Debug(ctx, "decrypt profile A failed", "error", err)
		return nil, err
	}
	b, err := gateway.Decrypt(e.gw, req.ProfileB, req.KeyB)
	if err != nil {
		log.Debug(ctx, "decrypt profile B failed", "error", err)
		return nil, err
	}

	s := score(a, b)

	forA, err := gateway.Encrypt(e.gw, MatchResult{Match: s.Match, Score: s.Value, PeerID: b.UserID}, req.ToA)
	if err != nil {
		return nil, err
	}
	forB, err := gateway.Encrypt(e.gw, MatchResult{Match: s.Match, Score: s.Value, PeerID: a.UserID}, req.ToB)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "invocation finished", logging.Redacted("score"))
	return &Response{ForA: forA, ForB: forB}, nil
}

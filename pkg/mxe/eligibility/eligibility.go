package eligibility

import (
	"context"
	"errors"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

// Eligible is the verdict shared by both checks: value meets threshold and the
// member is active.
func Eligible(value, threshold uint8, active bool) bool {
	return active && value >= threshold
}

// Engine runs eligibility circuits. It is stateless and safe for concurrent use.
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

// Request is the input to VerifyTier and VerifyReputation.
type Request struct {
	Member       gateway.Ciphertext[MemberProfile]
	MemberKey    gateway.KeyRef
	Threshold    gateway.Ciphertext[gateway.U8]
	ThresholdKey gateway.KeyRef
	// Verifier receives the verdict. It should not be the member's key.
	Verifier gateway.KeyRef
}

// VerifyTier reports to the verifier whether the member's tier meets the
// threshold.
func (e *Engine) VerifyTier(ctx context.Context, req *Request) (gateway.Ciphertext[gateway.Bool], error) {
	return e.verify(ctx, "VerifyTier", func(p MemberProfile) uint8 { return p.Tier }, req)
}

// VerifyReputation reports to the verifier whether the member's reputation
// meets the threshold.
func (e *Engine) VerifyReputation(ctx context.Context, req *Request) (gateway.Ciphertext[gateway.Bool], error) {
	return e.verify(ctx, "VerifyReputation", func(p MemberProfile) uint8 { return p.Reputation }, req)
}

func (e *Engine) verify(ctx context.Context, op string, field func(MemberProfile) uint8, req *Request) (gateway.Ciphertext[gateway.Bool], error) {
	var none gateway.Ciphertext[gateway.Bool]
	if req == nil {
		return none, errors.New("eligibility: nil request")
	}
	id := mxe.NewInvocationID()
	log := e.logger.With("circuit", "eligibility."+op, "invocation", id.String())
	log.Debug(ctx, "invocation started",
		"member_key", req.MemberKey.String(), "verifier", req.Verifier.String())
	if req.Verifier.Equal(req.MemberKey) {
		log.Warn(ctx, "verifier key equals member key; the member will be able to read the verdict")
	}

	member, err := gateway.Decrypt(e.gw, req.Member, req.MemberKey)
	if err != nil {
		log.Debug(ctx, "decrypt member profile failed", "error", err)
		return none, err
	}
	threshold, err := gateway.Decrypt(e.gw, req.Threshold, req.ThresholdKey)
	if err != nil {
		log.Debug(ctx, "decrypt threshold failed", "error", err)
		return none, err
	}

	verdict := Eligible(field(member), uint8(threshold), member.Active)
	out, err := gateway.Encrypt(e.gw, gateway.Bool(verdict), req.Verifier)
	if err != nil {
		return none, err
	}
	log.Debug(ctx, "invocation finished", logging.Redacted("verdict"))
	return out, nil
}

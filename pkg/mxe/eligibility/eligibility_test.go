package eligibility_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/mxe-go/internal/testkeys"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/eligibility"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

type fixture struct {
	gw                          *gateway.Gateway
	eng                         *eligibility.Engine
	member, requester, verifier *gateway.Client
}

func newFixture(t *testing.T, opts ...eligibility.Option) *fixture {
	t.Helper()
	gw := testkeys.Gateway(t)
	return &fixture{
		gw:        gw,
		eng:       eligibility.New(gw, opts...),
		member:    testkeys.Client(t, gw),
		requester: testkeys.Client(t, gw),
		verifier:  testkeys.NamedClient(t, gw, "verifier"),
	}
}

func (f *fixture) request(t *testing.T, p eligibility.MemberProfile, threshold uint8) *eligibility.Request {
	t.Helper()
	m, err := gateway.Seal(f.member, p)
	require.NoError(t, err)
	th, err := gateway.Seal(f.requester, gateway.U8(threshold))
	require.NoError(t, err)
	return &eligibility.Request{
		Member:       m,
		MemberKey:    f.member.Ref(),
		Threshold:    th,
		ThresholdKey: f.requester.Ref(),
		Verifier:     f.verifier.Ref(),
	}
}

func TestEligibleStepFunction(t *testing.T) {
	for threshold := 0; threshold <= 255; threshold++ {
		for value := 0; value <= 255; value++ {
			require.Equalf(t, value >= threshold, eligibility.Eligible(uint8(value), uint8(threshold), true),
				"Eligible(%d, %d, true)", value, threshold)
			require.Falsef(t, eligibility.Eligible(uint8(value), uint8(threshold), false),
				"Eligible(%d, %d, false)", value, threshold)
		}
	}
}

func TestVerifyMonotonicOverFullRange(t *testing.T) {
	f := newFixture(t, eligibility.WithLogger(logging.Discard()))
	ctx := context.Background()

	checks := []struct {
		name   string
		verify func(context.Context, *eligibility.Request) (gateway.Ciphertext[gateway.Bool], error)
		build  func(v uint8) eligibility.MemberProfile
	}{
		{"tier", f.eng.VerifyTier, func(v uint8) eligibility.MemberProfile {
			return eligibility.MemberProfile{MemberID: 1, Tier: v, Reputation: 0, Active: true}
		}},
		{"reputation", f.eng.VerifyReputation, func(v uint8) eligibility.MemberProfile {
			return eligibility.MemberProfile{MemberID: 1, Tier: 0, Reputation: v, Active: true}
		}},
	}

	const threshold = 137
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			for v := 0; v <= 255; v++ {
				ct, err := c.verify(ctx, f.request(t, c.build(uint8(v)), threshold))
				require.NoError(t, err)
				got, err := gateway.Open(f.verifier, ct)
				require.NoError(t, err)
				require.Equalf(t, v >= threshold, bool(got), "value %d", v)
			}
		})
	}
}

func TestVerifyComparesOnlyTheNamedField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := eligibility.MemberProfile{MemberID: 9, Tier: 10, Reputation: 200, Active: true}

	tier, err := f.eng.VerifyTier(ctx, f.request(t, p, 50))
	require.NoError(t, err)
	rep, err := f.eng.VerifyReputation(ctx, f.request(t, p, 50))
	require.NoError(t, err)

	gotTier, err := gateway.Open(f.verifier, tier)
	require.NoError(t, err)
	gotRep, err := gateway.Open(f.verifier, rep)
	require.NoError(t, err)

	require.False(t, bool(gotTier))
	require.True(t, bool(gotRep))
}

func TestVerifyInactiveMemberIsIneligible(t *testing.T) {
	f := newFixture(t)
	p := eligibility.MemberProfile{MemberID: 2, Tier: 255, Reputation: 255, Active: false}

	ct, err := f.eng.VerifyTier(context.Background(), f.request(t, p, 0))
	require.NoError(t, err)
	got, err := gateway.Open(f.verifier, ct)
	require.NoError(t, err)
	require.False(t, bool(got))
}

func TestVerdictOnlyReadableByVerifier(t *testing.T) {
	f := newFixture(t)
	p := eligibility.MemberProfile{MemberID: 3, Tier: 5, Active: true}

	ct, err := f.eng.VerifyTier(context.Background(), f.request(t, p, 1))
	require.NoError(t, err)
	require.True(t, ct.KeyRef().Equal(f.verifier.Ref()))

	_, err = gateway.Open(f.member, ct)
	require.ErrorIs(t, err, gateway.ErrKeyMismatch)
	_, err = gateway.Open(f.requester, ct)
	require.ErrorIs(t, err, gateway.ErrKeyMismatch)
}

func TestVerifyWrongThresholdKey(t *testing.T) {
	f := newFixture(t)
	req := f.request(t, eligibility.MemberProfile{Tier: 1, Active: true}, 1)
	req.ThresholdKey = f.member.Ref()

	_, err := f.eng.VerifyReputation(context.Background(), req)
	require.ErrorIs(t, err, gateway.ErrKeyMismatch)
}

func TestVerifierEqualToMemberWarns(t *testing.T) {
	var buf bytes.Buffer
	h, err := logging.NewHandler(&buf, "warn", "text")
	require.NoError(t, err)

	f := newFixture(t, eligibility.WithLogger(logging.New(slog.New(h))))
	req := f.request(t, eligibility.MemberProfile{Tier: 4, Active: true}, 3)
	req.Verifier = f.member.Ref()

	ct, err := f.eng.VerifyTier(context.Background(), req)
	require.NoError(t, err)
	require.True(t, strings.Contains(buf.String(), "verifier key equals member key"))

	got, err := gateway.Open(f.member, ct)
	require.NoError(t, err)
	require.True(t, bool(got))
}

// Package eligibility checks a member's private tier or reputation against a
// private threshold and reveals the verdict to a verifier only.
//
// The member supplies an encrypted MemberProfile and a requester supplies an
// encrypted threshold. The result is a single gateway.Bool ciphertext bound to
// the verifier key named in the request; the member never receives it.
//
//	res, err := eng.VerifyTier(ctx, &eligibility.Request{
//	    Member:       memberCT,
//	    MemberKey:    member.Ref(),
//	    Threshold:    thresholdCT,
//	    ThresholdKey: requester.Ref(),
//	    Verifier:     verifier.Ref(),
//	})
//
// For a fixed threshold and an active member the verdict is a step function
// of the compared field: false below the threshold, true at or above it.
package eligibility

// Package matching computes pairwise compatibility between two parties'
// encrypted preference profiles.
//
// Two scoring policies are provided as distinct pure functions over the same
// PreferenceProfile type:
//
//   - DetailedScore: interest-slot overlap, bidirectional age containment and
//     intent. Match at 30, maximum 80.
//   - CoarseScore: interest category, overlapping age ranges and intent.
//     Match at 60, maximum 100.
//
// Both are symmetric: swapping the two profiles never changes the score.
//
// # Entry Points
//
// Engine.CheckMatch and Engine.CheckCoarseMatch decrypt both profiles through
// the gateway, score them, and return one MatchResult ciphertext per party.
// Each party's result names the other party's identifier and is encrypted to
// that party's result key only.
//
//	eng := matching.New(gw)
//	resp, err := eng.CheckMatch(ctx, &matching.Request{
//	    ProfileA: ctA, KeyA: alice.Ref(), ToA: alice.Ref(),
//	    ProfileB: ctB, KeyB: bob.Ref(), ToB: bob.Ref(),
//	})
//	if err != nil {
//	    return err
//	}
//	mine, err := gateway.Open(alice, resp.ForA)
//
// An invocation either returns both results or an error; it never returns a
// single result.
package matching

// Package confession assigns identifiers to submitted records without seeing
// more than it needs, and acknowledges likes.
//
// Two submission policies coexist:
//
//   - Submit (stateless): the identifier is the caller-supplied timestamp.
//     Nothing makes it unique; callers that need uniqueness must layer it on
//     the plaintext side.
//   - SubmitCounted: the identifier comes from a cluster-owned u64 counter.
//     The counter ciphertext is threaded through calls by the caller, who
//     persists each returned counter and must serialize submissions so no two
//     of them start from the same counter value. The engine does no locking.
//     See package countercell for a caller-side implementation.
//
// Like always acknowledges with true and performs no existence check on the
// identifier it is given.
package confession

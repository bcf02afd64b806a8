// Package mxe is the root of a confidential computation core. Values enter and
// leave it only as ciphertexts bound to a key reference; plaintext exists only
// for the duration of a single circuit invocation.
//
// The core is split into an encryption gateway (package gateway) and three
// circuit engines built on top of it:
//
//   - matching: pairwise compatibility scoring of two private preference profiles
//   - eligibility: threshold checks of a private membership profile, answered to
//     a third-party verifier
//   - confession: identifier assignment for submitted records, either echoing a
//     caller timestamp or from a cluster-owned counter
//
// Engines never call each other. They share the gateway and nothing else; the
// counter used by the confession engine is threaded through calls by the
// caller as a ciphertext bound to the cluster key. Serializing access to that
// counter is the caller's job (see package countercell for a reference
// implementation).
//
// # Security Considerations
//
//   - Key material and decoded plaintext buffers are zeroized on a best-effort
//     basis after use (see ZeroizeBytes).
//   - Ciphertexts must be compared by their decrypted values, never by bytes:
//     encryption is randomized.
//   - Logs never carry plaintext; use logging.Redacted for any attribute that
//     would otherwise hold a secret.
package mxe

// Package gateway is the encryption gateway of the computation core: the only
// place where plaintext crosses a party boundary.
//
// # Key references
//
// A KeyRef names the key a ciphertext is bound to. It is one of:
//
//   - shared: an ephemeral per-request key of one calling party. The symmetric
//     key is agreed between the party's secp256k1 key and the cluster key (ECDH).
//   - cluster: the persistent cluster-wide key, used for state that outlives a
//     single invocation (the confession counter).
//
// # Ciphertexts
//
// Ciphertext[T] is a tagged pair of payload and KeyRef. The type parameter
// carries the semantic type of the plaintext, so passing a counter where a
// profile is expected fails at compile time. The semantic tag and the KeyRef are
// also authenticated as associated data, so a payload re-labelled at runtime is
// rejected as malformed.
//
// Encryption is randomized (XChaCha20-Poly1305 with a fresh 24-byte nonce).
// Two encryptions of the same value are not bit-identical; compare decrypted
// values, never ciphertext bytes.
//
// # Inside the boundary
//
//	profile, err := gateway.Decrypt(g, ct, senderRef)
//	// ... compute ...
//	out, err := gateway.Encrypt(g, result, recipientRef)
//
// Decrypt fails with a *KeyMismatchError (errors.Is(err, ErrKeyMismatch)) when
// the presented key is not the one the ciphertext is bound to, and with
// ErrMalformedCiphertext for anything structurally invalid. There are no other
// error classes.
//
// # Outside the boundary
//
// Parties hold a Client: Seal encrypts an input under the party's shared key,
// Open decrypts a result addressed to it.
package gateway

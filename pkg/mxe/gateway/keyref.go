package gateway

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
)

// KeyKind distinguishes per-request party keys from the persistent cluster key.
type KeyKind uint8

const (
	kindInvalid KeyKind = iota
	// KindShared is an ephemeral key tied to one calling party for one
	// request/response round trip.
	KindShared
	// KindCluster is the cluster-wide key that lives for the system's
	// operational lifetime.
	KindCluster
)

func (k KeyKind) String() string {
	switch k {
	case KindShared:
		return "shared"
	case KindCluster:
		return "cluster"
	default:
		return "invalid"
	}
}

func (k KeyKind) valid() bool { return k == KindShared || k == KindCluster }

// KeyRef names the key a ciphertext is bound to: a kind plus a compressed
// secp256k1 public key. The zero value is invalid.
type KeyRef struct {
	kind KeyKind
	pub  [btcec.PubKeyBytesLenCompressed]byte
}

// SharedRef returns the shared key reference for a party public key.
func SharedRef(pub *btcec.PublicKey) KeyRef {
	return newKeyRef(KindShared, pub)
}

func newKeyRef(kind KeyKind, pub *btcec.PublicKey) KeyRef {
	r := KeyRef{kind: kind}
	copy(r.pub[:], pub.SerializeCompressed())
	return r
}

// ParseKeyRef reconstructs a reference from its kind and compressed public key,
// as carried in a ciphertext envelope.
func ParseKeyRef(kind KeyKind, pub []byte) (KeyRef, error) {
	if !kind.valid() {
		return KeyRef{}, ErrMalformedKeyRef
	}
	if len(pub) != btcec.PubKeyBytesLenCompressed {
		return KeyRef{}, ErrMalformedKeyRef
	}
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return KeyRef{}, ErrMalformedKeyRef
	}
	return newKeyRef(kind, key), nil
}

// Kind returns the reference kind.
func (r KeyRef) Kind() KeyKind { return r.kind }

// IsZero reports whether r is the invalid zero reference.
func (r KeyRef) IsZero() bool { return !r.kind.valid() }

// Equal reports whether two references name the same key. The public key
// comparison is constant-time.
func (r KeyRef) Equal(other KeyRef) bool {
	sameKind := subtle.ConstantTimeByteEq(uint8(r.kind), uint8(other.kind))
	samePub := subtle.ConstantTimeCompare(r.pub[:], other.pub[:])
	return sameKind&samePub == 1
}

// PublicKey returns a copy of the compressed public key.
func (r KeyRef) PublicKey() []byte {
	out := make([]byte, len(r.pub))
	copy(out, r.pub[:])
	return out
}

func (r KeyRef) publicKey() (*btcec.PublicKey, error) {
	if r.IsZero() {
		return nil, ErrMalformedKeyRef
	}
	pub, err := btcec.ParsePubKey(r.pub[:])
	if err != nil {
		return nil, ErrMalformedKeyRef
	}
	return pub, nil
}

// bytes is the canonical binding of the reference used as associated data.
func (r KeyRef) bytes() []byte {
	out := make([]byte, 0, 1+len(r.pub))
	out = append(out, byte(r.kind))
	return append(out, r.pub[:]...)
}

// Fingerprint is a short, stable identifier for logs.
func (r KeyRef) Fingerprint() string {
	sum := sha256.Sum256(r.bytes())
	return hex.EncodeToString(sum[:8])
}

// String renders kind:fingerprint.
func (r KeyRef) String() string {
	if r.IsZero() {
		return "invalid"
	}
	return r.kind.String() + ":" + r.Fingerprint()
}

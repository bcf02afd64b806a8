package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

// Gateway holds the cluster key and performs every decryption into, and
// encryption out of, the computation domain. It has no mutable state and is
// safe for concurrent use.
type Gateway struct {
	priv   *btcec.PrivateKey
	ref    KeyRef
	logger logging.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for rejected decryptions.
func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a gateway for the given cluster private key. The gateway keeps
// a reference to the key; call Close to zero it.
func New(clusterKey *btcec.PrivateKey, opts ...Option) (*Gateway, error) {
	if clusterKey == nil {
		return nil, errors.New("gateway: nil cluster key")
	}
	g := &Gateway{
		priv:   clusterKey,
		ref:    newKeyRef(KindCluster, clusterKey.PubKey()),
		logger: logging.New(nil),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate creates a gateway with a fresh cluster key.
func Generate(opts ...Option) (*Gateway, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return New(priv, opts...)
}

// ClusterRef returns the reference of the cluster key.
func (g *Gateway) ClusterRef() KeyRef { return g.ref }

// Close zeroes the cluster private key. The gateway must not be used after.
func (g *Gateway) Close() error {
	if g == nil || g.priv == nil {
		return nil
	}
	g.priv.Zero()
	g.priv = nil
	return nil
}

// keyFor derives the AEAD key for ref. The caller must zeroize it.
func (g *Gateway) keyFor(op string, ref KeyRef) ([]byte, error) {
	if g == nil || g.priv == nil {
		return nil, &Error{Op: op, Err: errors.New("gateway closed")}
	}

	switch ref.kind {
	case KindShared:
		pub, err := ref.publicKey()
		if err != nil {
			return nil, &Error{Op: op, Err: err}
		}
		secret := btcec.GenerateSharedSecret(g.priv, pub)
		defer mxe.ZeroizeBytes(secret)
		return deriveKey(secret, infoShared, ref)

	case KindCluster:
		if !ref.Equal(g.ref) {
			if op == "Encrypt" {
				return nil, &Error{Op: op, Err: fmt.Errorf("%w: foreign cluster reference %s", ErrMalformedKeyRef, ref)}
			}
			return nil, &KeyMismatchError{Bound: ref, Presented: g.ref}
		}
		secret := g.priv.Serialize()
		defer mxe.ZeroizeBytes(secret)
		return deriveKey(secret, infoCluster, ref)

	default:
		return nil, &Error{Op: op, Err: ErrMalformedKeyRef}
	}
}

// Encrypt binds v to recipient. It fails only for an unusable recipient
// reference: the zero value, or a cluster reference other than this
// gateway's. Both match ErrMalformedKeyRef.
func Encrypt[T Plaintext](g *Gateway, v T, recipient KeyRef) (Ciphertext[T], error) {
	key, err := g.keyFor("Encrypt", recipient)
	if err != nil {
		return Ciphertext[T]{}, err
	}
	defer mxe.ZeroizeBytes(key)
	return seal("Encrypt", key, recipient, v)
}

// Decrypt opens ct with the presented key. The presented key must be the one
// ct is bound to; any other key fails with *KeyMismatchError before any
// cryptographic work is done.
func Decrypt[T Plaintext, P decoder[T]](g *Gateway, ct Ciphertext[T], key KeyRef) (T, error) {
	var zero T
	if ct.ref.IsZero() {
		return zero, malformed("Decrypt", "zero ciphertext")
	}
	if !ct.ref.Equal(key) {
		if g != nil {
			g.logger.Debug(context.Background(), "decrypt rejected",
				"bound", ct.ref.String(), "presented", key.String())
		}
		return zero, &KeyMismatchError{Bound: ct.ref, Presented: key}
	}

	aeadKey, err := g.keyFor("Decrypt", key)
	if err != nil {
		return zero, err
	}
	defer mxe.ZeroizeBytes(aeadKey)
	return open[T, P]("Decrypt", aeadKey, ct)
}

// Reencrypt moves a value from one key to another in a single, explicit step.
// It is the only sanctioned way to re-key a value without computing on it.
func Reencrypt[T Plaintext, P decoder[T]](g *Gateway, ct Ciphertext[T], from, to KeyRef) (Ciphertext[T], error) {
	v, err := Decrypt[T, P](g, ct, from)
	if err != nil {
		return Ciphertext[T]{}, err
	}
	return Encrypt(g, v, to)
}

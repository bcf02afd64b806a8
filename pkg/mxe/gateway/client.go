package gateway

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

// Client is one party's side of the boundary: it seals inputs under its shared
// key and opens results addressed to it. A Client cannot open cluster-bound
// ciphertexts or ciphertexts addressed to another party.
type Client struct {
	priv    *btcec.PrivateKey
	ref     KeyRef
	cluster *btcec.PublicKey
}

// NewClient creates a party with a fresh ephemeral key agreed against the
// cluster referenced by cluster.
func NewClient(cluster KeyRef) (*Client, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewClientWithKey(priv, cluster)
}

// NewClientWithKey creates a party from an existing private key, for parties
// such as verifiers that keep a key across requests.
func NewClientWithKey(priv *btcec.PrivateKey, cluster KeyRef) (*Client, error) {
	if priv == nil {
		return nil, errors.New("gateway: nil party key")
	}
	if cluster.Kind() != KindCluster {
		return nil, ErrMalformedKeyRef
	}
	pub, err := cluster.publicKey()
	if err != nil {
		return nil, err
	}
	return &Client{
		priv:    priv,
		ref:     SharedRef(priv.PubKey()),
		cluster: pub,
	}, nil
}

// Ref returns the party's shared key reference.
func (c *Client) Ref() KeyRef { return c.ref }

// Close zeroes the party private key.
func (c *Client) Close() error {
	if c == nil || c.priv == nil {
		return nil
	}
	c.priv.Zero()
	c.priv = nil
	return nil
}

func (c *Client) key(op string) ([]byte, error) {
	if c == nil || c.priv == nil {
		return nil, &Error{Op: op, Err: errors.New("client closed")}
	}
	secret := btcec.GenerateSharedSecret(c.priv, c.cluster)
	defer mxe.ZeroizeBytes(secret)
	return deriveKey(secret, infoShared, c.ref)
}

// Seal encrypts v under the party's shared key.
func Seal[T Plaintext](c *Client, v T) (Ciphertext[T], error) {
	key, err := c.key("Seal")
	if err != nil {
		return Ciphertext[T]{}, err
	}
	defer mxe.ZeroizeBytes(key)
	return seal("Seal", key, c.ref, v)
}

// Open decrypts a ciphertext addressed to this party.
func Open[T Plaintext, P decoder[T]](c *Client, ct Ciphertext[T]) (T, error) {
	var zero T
	if ct.ref.IsZero() {
		return zero, malformed("Open", "zero ciphertext")
	}
	if !ct.ref.Equal(c.ref) {
		return zero, &KeyMismatchError{Bound: ct.ref, Presented: c.ref}
	}
	key, err := c.key("Open")
	if err != nil {
		return zero, err
	}
	defer mxe.ZeroizeBytes(key)
	return open[T, P]("Open", key, ct)
}

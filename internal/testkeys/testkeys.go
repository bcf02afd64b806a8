// Package testkeys provides deterministic keys and ready-made gateways for
// tests. Do not use outside tests.
package testkeys

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

// PrivateKey derives a deterministic secp256k1 key from label.
func PrivateKey(label string) *btcec.PrivateKey {
	seed := sha256.Sum256([]byte("mxe-go/testkeys/" + label))
	priv, _ := btcec.PrivKeyFromBytes(seed[:])
	return priv
}

// Gateway returns a gateway over a deterministic cluster key. The gateway is
// closed when the test ends.
func Gateway(tb testing.TB) *gateway.Gateway {
	tb.Helper()
	g, err := gateway.New(PrivateKey("cluster"), gateway.WithLogger(logging.Discard()))
	if err != nil {
		tb.Fatalf("gateway.New: %v", err)
	}
	tb.Cleanup(func() { _ = g.Close() })
	return g
}

// Client returns a party with a fresh ephemeral key against g's cluster.
func Client(tb testing.TB, g *gateway.Gateway) *gateway.Client {
	tb.Helper()
	c, err := gateway.NewClient(g.ClusterRef())
	if err != nil {
		tb.Fatalf("gateway.NewClient: %v", err)
	}
	tb.Cleanup(func() { _ = c.Close() })
	return c
}

// NamedClient returns a party with a deterministic key derived from name.
func NamedClient(tb testing.TB, g *gateway.Gateway, name string) *gateway.Client {
	tb.Helper()
	c, err := gateway.NewClientWithKey(PrivateKey(fmt.Sprintf("party/%s", name)), g.ClusterRef())
	if err != nil {
		tb.Fatalf("gateway.NewClientWithKey: %v", err)
	}
	tb.Cleanup(func() { _ = c.Close() })
	return c
}

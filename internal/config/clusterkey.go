package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

// LoadClusterKey reads a hex-encoded 32-byte secp256k1 private key.
//
// SECURITY WARNING: the returned key is the cluster secret. Call Zero on it
// (or Close on the gateway that owns it) when done.
func LoadClusterKey(path string) (*btcec.PrivateKey, error) {
	absPath, err := SecurePath(path)
	if err != nil {
		return nil, fmt.Errorf("secure path: %w", err)
	}
	data, err := os.ReadFile(absPath) // #nosec G304 -- absPath validated by SecurePath
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	defer mxe.ZeroizeBytes(data)

	trimmed := bytes.TrimSpace(data)
	raw := make([]byte, hex.DecodedLen(len(trimmed)))
	defer mxe.ZeroizeBytes(raw)
	if _, err := hex.Decode(raw, trimmed); err != nil {
		return nil, errors.New("cluster key: not valid hex")
	}
	if len(raw) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("cluster key: want %d bytes, got %d", btcec.PrivKeyBytesLen, len(raw))
	}

	priv, _ := btcec.PrivKeyFromBytes(raw)
	return priv, nil
}

// WriteClusterKey writes priv to path with owner-only permissions. It refuses
// to overwrite an existing file.
func WriteClusterKey(path string, priv *btcec.PrivateKey) error {
	if priv == nil {
		return errors.New("nil key")
	}
	absPath, err := SecurePath(path)
	if err != nil {
		return fmt.Errorf("secure path: %w", err)
	}

	raw := priv.Serialize()
	defer mxe.ZeroizeBytes(raw)
	encoded := make([]byte, hex.EncodedLen(len(raw))+1)
	defer mxe.ZeroizeBytes(encoded)
	hex.Encode(encoded, raw)
	encoded[len(encoded)-1] = '\n'

	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) // #nosec G304 -- absPath validated by SecurePath
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	if _, err := f.Write(encoded); err != nil {
		f.Close()
		return fmt.Errorf("write key file: %w", err)
	}
	return f.Close()
}

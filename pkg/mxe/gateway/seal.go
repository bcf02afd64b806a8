package gateway

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

const (
	infoShared  = "mxe-go/gateway/shared/v1"
	infoCluster = "mxe-go/gateway/cluster/v1"
)

// deriveKey expands secret into an AEAD key bound to ref. The caller owns and
// must zeroize the result.
func deriveKey(secret []byte, info string, ref KeyRef) ([]byte, error) {
	label := append([]byte(info), ref.bytes()...)
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, label), key); err != nil {
		mxe.ZeroizeBytes(key)
		return nil, err
	}
	return key, nil
}

func associatedData(ref KeyRef, tag string) []byte {
	return append(ref.bytes(), tag...)
}

func seal[T Plaintext](op string, key []byte, ref KeyRef, v T) (Ciphertext[T], error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return Ciphertext[T]{}, &Error{Op: op, Err: err}
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return Ciphertext[T]{}, &Error{Op: op, Err: err}
	}

	pt := marshalPlaintext(v)
	defer mxe.ZeroizeBytes(pt)

	return Ciphertext[T]{
		ref:    ref,
		nonce:  nonce,
		sealed: aead.Seal(nil, nonce, pt, associatedData(ref, v.PlaintextTag())),
	}, nil
}

func open[T Plaintext, P decoder[T]](op string, key []byte, ct Ciphertext[T]) (T, error) {
	var out T

	if len(ct.nonce) != chacha20poly1305.NonceSizeX {
		return out, malformed(op, "nonce length %d", len(ct.nonce))
	}
	if want := sizeOf[T]() + chacha20poly1305.Overhead; len(ct.sealed) != want {
		return out, malformed(op, "payload length %d, want %d", len(ct.sealed), want)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return out, &Error{Op: op, Err: err}
	}

	pt, err := aead.Open(nil, ct.nonce, ct.sealed, associatedData(ct.ref, tagOf[T]()))
	if err != nil {
		return out, malformed(op, "authentication failed")
	}
	defer mxe.ZeroizeBytes(pt)

	if err := P(&out).UnmarshalFixed(pt); err != nil {
		var zero T
		return zero, malformed(op, "decode %s: %v", tagOf[T](), err)
	}
	return out, nil
}

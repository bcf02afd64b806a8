package gateway

import (
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
)

// Ciphertext is an encrypted value of semantic type T bound to exactly one key
// reference. Values are immutable; accessors return copies.
type Ciphertext[T Plaintext] struct {
	ref    KeyRef
	nonce  []byte
	sealed []byte
}

// KeyRef returns the reference of the key the ciphertext is bound to.
func (c Ciphertext[T]) KeyRef() KeyRef { return c.ref }

// IsZero reports whether c is the zero Ciphertext.
func (c Ciphertext[T]) IsZero() bool {
	return c.ref.IsZero() && len(c.nonce) == 0 && len(c.sealed) == 0
}

// envelope is the on-wire form of a ciphertext.
type envelope struct {
	_       struct{} `cbor:",toarray"`
	Version uint8
	Kind    uint8
	Key     []byte
	Tag     string
	Nonce   []byte
	Sealed  []byte
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// MarshalCBOR encodes the ciphertext envelope.
func (c Ciphertext[T]) MarshalCBOR() ([]byte, error) {
	if c.ref.IsZero() {
		return nil, malformed("Marshal", "zero ciphertext")
	}
	return encMode.Marshal(envelope{
		Version: mxe.WireVersion,
		Kind:    uint8(c.ref.kind),
		Key:     c.ref.PublicKey(),
		Tag:     tagOf[T](),
		Nonce:   c.nonce,
		Sealed:  c.sealed,
	})
}

// UnmarshalCBOR decodes and structurally validates an envelope. It never
// decrypts.
func (c *Ciphertext[T]) UnmarshalCBOR(data []byte) error {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return malformed("Unmarshal", "envelope: %v", err)
	}
	if env.Version != mxe.WireVersion {
		return malformed("Unmarshal", "unsupported version %d", env.Version)
	}
	ref, err := ParseKeyRef(KeyKind(env.Kind), env.Key)
	if err != nil {
		return &Error{Op: "Unmarshal", Err: err}
	}
	if want := tagOf[T](); env.Tag != want {
		return malformed("Unmarshal", "semantic type %q, want %q", env.Tag, want)
	}
	if len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return malformed("Unmarshal", "nonce length %d", len(env.Nonce))
	}
	if want := sizeOf[T]() + chacha20poly1305.Overhead; len(env.Sealed) != want {
		return malformed("Unmarshal", "payload length %d, want %d", len(env.Sealed), want)
	}

	*c = Ciphertext[T]{ref: ref, nonce: env.Nonce, sealed: env.Sealed}
	return nil
}

// Bytes is MarshalCBOR under a shorter name.
func (c Ciphertext[T]) Bytes() ([]byte, error) {
	return c.MarshalCBOR()
}

// ParseCiphertext decodes an envelope produced by Bytes.
func ParseCiphertext[T Plaintext](data []byte) (Ciphertext[T], error) {
	var ct Ciphertext[T]
	if err := ct.UnmarshalCBOR(data); err != nil {
		return Ciphertext[T]{}, err
	}
	return ct, nil
}

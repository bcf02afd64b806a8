package gateway

import (
	"encoding/binary"
	"fmt"
)

// Plaintext is implemented by every value type that may cross the boundary.
// Encodings are fixed-width; nothing inside the boundary is variable-length.
type Plaintext interface {
	// PlaintextTag names the semantic type. It is authenticated with the
	// payload and must be stable across releases.
	PlaintextTag() string
	// FixedSize is the exact encoded length in bytes.
	FixedSize() int
	// MarshalFixed writes the encoding into dst, which has length FixedSize.
	MarshalFixed(dst []byte)
}

// decoder is satisfied by *T for every Plaintext T that can be decoded.
type decoder[T Plaintext] interface {
	*T
	UnmarshalFixed(src []byte) error
}

func tagOf[T Plaintext]() string {
	var zero T
	return zero.PlaintextTag()
}

func sizeOf[T Plaintext]() int {
	var zero T
	return zero.FixedSize()
}

func marshalPlaintext[T Plaintext](v T) []byte {
	buf := make([]byte, v.FixedSize())
	v.MarshalFixed(buf)
	return buf
}

// U8 is a single-byte unsigned plaintext.
type U8 uint8

func (U8) PlaintextTag() string      { return "u8" }
func (U8) FixedSize() int            { return 1 }
func (v U8) MarshalFixed(dst []byte) { dst[0] = byte(v) }

func (v *U8) UnmarshalFixed(src []byte) error {
	if len(src) != 1 {
		return fmt.Errorf("u8: want 1 byte, got %d", len(src))
	}
	*v = U8(src[0])
	return nil
}

// U64 is an eight-byte big-endian unsigned plaintext.
type U64 uint64

func (U64) PlaintextTag() string      { return "u64" }
func (U64) FixedSize() int            { return 8 }
func (v U64) MarshalFixed(dst []byte) { binary.BigEndian.PutUint64(dst, uint64(v)) }

func (v *U64) UnmarshalFixed(src []byte) error {
	if len(src) != 8 {
		return fmt.Errorf("u64: want 8 bytes, got %d", len(src))
	}
	*v = U64(binary.BigEndian.Uint64(src))
	return nil
}

// Bool is a single-byte boolean plaintext; only 0 and 1 decode.
type Bool bool

func (Bool) PlaintextTag() string { return "bool" }
func (Bool) FixedSize() int       { return 1 }

func (v Bool) MarshalFixed(dst []byte) {
	dst[0] = 0
	if v {
		dst[0] = 1
	}
}

func (v *Bool) UnmarshalFixed(src []byte) error {
	if len(src) != 1 {
		return fmt.Errorf("bool: want 1 byte, got %d", len(src))
	}
	b, err := DecodeBool(src[0])
	if err != nil {
		return err
	}
	*v = Bool(b)
	return nil
}

// DecodeBool decodes a single boolean byte, rejecting anything but 0 and 1.
// Composite plaintexts use it for their flag fields.
func DecodeBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("bool: invalid byte %d", b)
	}
}

// EncodeBool is the inverse of DecodeBool.
func EncodeBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}

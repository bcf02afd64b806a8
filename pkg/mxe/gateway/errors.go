package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyMismatch indicates a ciphertext was presented with a key other
	// than the one it is bound to.
	ErrKeyMismatch = errors.New("gateway: key mismatch")

	// ErrMalformedCiphertext indicates structurally invalid input: a bad
	// envelope, a wrong semantic tag, a failed authentication check, or a
	// plaintext that does not decode.
	ErrMalformedCiphertext = errors.New("gateway: malformed ciphertext")

	// ErrMalformedKeyRef indicates an unusable key reference. It belongs to the
	// malformed-input class.
	ErrMalformedKeyRef = fmt.Errorf("%w: invalid key reference", ErrMalformedCiphertext)
)

// KeyMismatchError reports the key a ciphertext is bound to and the key that
// was presented for it. Both references are public.
type KeyMismatchError struct {
	Bound     KeyRef
	Presented KeyRef
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("gateway: key mismatch: ciphertext bound to %s, presented %s", e.Bound, e.Presented)
}

// Is reports ErrKeyMismatch so callers can use errors.Is.
func (e *KeyMismatchError) Is(target error) bool {
	return target == ErrKeyMismatch
}

// Error wraps an underlying error with the gateway operation that failed.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(op string, format string, args ...any) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", ErrMalformedCiphertext, fmt.Sprintf(format, args...)),
	}
}

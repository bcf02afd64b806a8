package mxe

import (
	"github.com/oklog/ulid/v2"
)

// InvocationID identifies one circuit invocation in logs. It carries no
// information about the inputs.
type InvocationID string

// NewInvocationID returns a fresh, lexically sortable invocation identifier.
func NewInvocationID() InvocationID {
	return InvocationID(ulid.Make().String())
}

func (id InvocationID) String() string { return string(id) }

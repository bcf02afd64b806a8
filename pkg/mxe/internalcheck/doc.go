// Package internalcheck holds source-level policy tests for the mxe packages.
//
// The tests load every package under pkg/mxe with golang.org/x/tools/go/packages
// and walk their syntax trees:
//
//   - no == or != between byte slices or byte arrays (use crypto/subtle);
//   - no %x or %X verbs in fmt or log format strings;
//   - no slog or logging call that passes a value whose type implements
//     gateway.Plaintext.
//
// The package has no exported API.
package internalcheck

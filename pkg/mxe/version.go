package mxe

var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// WireVersion is the ciphertext envelope version produced by this build.
const WireVersion uint8 = 1

// ModuleVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func ModuleVersion() string {
	return Version
}

// BuildCommit returns the VCS commit recorded at build time, or "unknown".
func BuildCommit() string {
	return Commit
}

// Package version exposes the build metadata stamped into the binary at
// link time via -ldflags.
package version

// Build metadata. The zero values identify a from-source build; releases
// override them with -ldflags "-X .../pkg/version.Version=... ".
var (
	// Version is the semantic version of the binary.
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// UserAgent identifies the binary in client metadata, such as the cache
// fingerprint and MCP server implementation info.
func UserAgent() string {
	return "checkstyle/" + Version
}

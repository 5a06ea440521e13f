// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Hostplay is the canonical application identifier used for filesystem paths and CLI branding.
	Hostplay = "hostplay"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the User-Agent presented by the controlled browser and outbound HTTP requests.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// runtime.GOOS values checked when locating a browser or opening a file.
const (
	Linux   = "linux"
	Darwin  = "darwin"
	Windows = "windows"

	// Android is reported apart from Linux under Termux.
	Android = "android"
)

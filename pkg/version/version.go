// Package version exposes the emimeter build version.
package version

// Version is the version string reported by the CLI. Release builds
// override it via:
//
//	go build -ldflags "-X github.com/rshade/emimeter/pkg/version.Version=v1.2.3"
//
//nolint:gochecknoglobals // set at link time
var Version = "0.1.0-dev"

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}

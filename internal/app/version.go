package app

import "fmt"

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/ecowallet-client/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and the
// version command.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// UserAgent returns the User-Agent sent to the backend. base is the
// configured product name.
func UserAgent(base string) string {
	if base == "" {
		base = "ecowallet-client"
	}
	return base + "/" + Version
}

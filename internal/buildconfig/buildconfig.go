package buildconfig

// Build-time variables injected via ldflags:
//
//	go build -ldflags "-X .../internal/buildconfig.version=v0.3.0 -X .../internal/buildconfig.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the build version.
func Version() string {
	return version
}

// Commit returns the git commit hash.
func Commit() string {
	return commit
}

package version

// Version is the current CLI version, overridden at build time via
// -ldflags "-X github.com/streamalong/cli/internal/version.Version=vX.Y.Z"
var Version = "v0.1.0-dev"

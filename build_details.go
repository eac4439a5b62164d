package sysconf

import (
	"fmt"
	"runtime"
)

var (
	// version, commit and buildTime are set via ldflags during build by
	// GoReleaser. For development builds these show "dev"/"none"/"unknown".
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// Commit returns the compiled git commit or "none" if run from source.
func Commit() string {
	return commit
}

// BuildTime returns the compiled build timestamp or "unknown" if run from
// source.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go toolchain version sysconf was compiled with.
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo formats all four build fields as one multi-line string.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}

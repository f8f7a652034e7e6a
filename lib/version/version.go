// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns Info plus the Go version, platform, and the versions of
// the CBOR, CID and multihash modules linked into the binary.
func Full() string {
	full := fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	for _, dependency := range Dependencies() {
		full += fmt.Sprintf("\n  %s: %s", dependency.Path, dependency.Version)
	}
	return full
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}

// Dependency is one module linked into the binary.
type Dependency struct {
	Path    string
	Version string
}

// reportedModules are the modules whose behavior determines wire
// output and identifiers.
var reportedModules = []string{
	"github.com/fxamacker/cbor/v2",
	"github.com/ipfs/go-cid",
	"github.com/multiformats/go-multihash",
	"github.com/zeebo/blake3",
}

// Dependencies returns the linked versions of the reported modules, in
// a fixed order. Modules missing from the build info are omitted; test
// binaries and builds without module support return nil.
func Dependencies() []Dependency {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	linked := make(map[string]string, len(info.Deps))
	for _, module := range info.Deps {
		if module.Replace != nil {
			module = module.Replace
		}
		linked[module.Path] = module.Version
	}
	var dependencies []Dependency
	for _, path := range reportedModules {
		if version, ok := linked[path]; ok {
			dependencies = append(dependencies, Dependency{Path: path, Version: version})
		}
	}
	return dependencies
}

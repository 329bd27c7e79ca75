// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build metadata stamped into release binaries.
package version

import (
	"fmt"
	"runtime"
)

// Overridden through -ldflags at release build time; the defaults identify
// a source build.
var (
	Version   = "2.0.0-development"
	GitCommit = "unknown"
	BuildDate = "unknown"

	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info returns the full one-line build description.
func Info() string {
	return fmt.Sprintf("ztredactor %s (commit: %s, built: %s, go: %s, platform: %s)",
		Version, GitCommit, BuildDate, GoVersion, Platform)
}

// Short returns the bare version number.
func Short() string {
	return Version
}

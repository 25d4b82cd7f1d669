// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version houses the version information for treapctl.
package version

import (
	"fmt"
	"strings"
)

const (
	// semanticAlphabet defines the allowed characters for the pre-release
	// portion of a semantic version string.
	semanticAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

	// semanticBuildAlphabet defines the allowed characters for the build
	// portion of a semantic version string.
	semanticBuildAlphabet = semanticAlphabet + "."
)

// These constants define the application version and follow the semantic
// versioning 2.0.0 spec (https://semver.org/).
const (
	Major uint = 0
	Minor uint = 1
	Patch uint = 0
)

var (
	// PreRelease may be overridden at build time with
	// '-ldflags "-X github.com/btcsuite/treapmap/internal/version.PreRelease=foo"'.
	// Characters outside semanticAlphabet are dropped.
	PreRelease = "pre"

	// BuildMetadata may be overridden at build time with
	// '-ldflags "-X github.com/btcsuite/treapmap/internal/version.BuildMetadata=foo"'.
	// Characters outside semanticBuildAlphabet are dropped.
	BuildMetadata = "dev"
)

// String returns the application version as a semantic version string.
func String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d.%d", Major, Minor, Patch)
	if preRelease := normalize(PreRelease, semanticAlphabet); preRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(preRelease)
	}
	if build := normalize(BuildMetadata, semanticBuildAlphabet); build != "" {
		sb.WriteByte('+')
		sb.WriteString(build)
	}
	return sb.String()
}

// normalize returns str stripped of every rune not in alphabet.
func normalize(str, alphabet string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(alphabet, r) {
			return r
		}
		return -1
	}, str)
}

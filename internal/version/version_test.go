// Copyright (c) 2017-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import "testing"

// TestString ensures the version string is assembled from the numeric
// version, pre-release and build metadata with invalid characters dropped.
func TestString(t *testing.T) {
	origPre, origBuild := PreRelease, BuildMetadata
	defer func() {
		PreRelease, BuildMetadata = origPre, origBuild
	}()

	tests := []struct {
		pre   string
		build string
		want  string
	}{
		{"", "", "0.1.0"},
		{"pre", "dev", "0.1.0-pre+dev"},
		{"rc.1", "", "0.1.0-rc1"},
		{"", "git.abc123", "0.1.0+git.abc123"},
		{"~!@", "#$%", "0.1.0"},
	}

	for i, test := range tests {
		PreRelease, BuildMetadata = test.pre, test.build
		if got := String(); got != test.want {
			t.Errorf("String #%d: unexpected version - got %q, want %q",
				i, got, test.want)
		}
	}
}

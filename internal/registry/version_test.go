// SPDX-License-Identifier: MPL-2.0

package registry

import "testing"

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"numeric not lexicographic", "1.10.0", "1.9.9", 1},
		{"shorter is smaller", "1.2", "1.2.1", -1},
		{"trailing zero equal", "1.2", "1.2.0", 0},
		{"major wins", "2.0", "1.99.99", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := CompareVersions(tt.b, tt.a); got != -tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestLatestVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{"numeric ordering", []string{"1.2.0", "1.10.0", "1.9.9"}, "1.10.0"},
		{"single", []string{"0.1"}, "0.1"},
		{"empty", nil, ""},
		{"duplicates", []string{"2.0.2", "2.1", "2.0.2"}, "2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatestVersion(tt.versions); got != tt.want {
				t.Errorf("LatestVersion(%v) = %q, want %q", tt.versions, got, tt.want)
			}
		})
	}
}

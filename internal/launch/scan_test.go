// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"path/filepath"
	"reflect"
	"testing"
)

const coverageOutput = `
my-app> test (suite: spec)
The coverage report for my-app's test-suite "spec" is available at /builds/hpc/spec/hpc_index.html
`

const haddockIndexOutput = `
Haddock coverage:
Updating Haddock index for local packages in
/builds/doc/index.html
`

const haddockCreatedOutput = `
Documentation created: dist/doc/html/my-app/index.html,
dist/doc/html/my-app/my-app.txt
`

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   []Artifact
	}{
		{
			name:   "coverage report",
			output: coverageOutput,
			want:   []Artifact{{Kind: ArtifactCoverage, Path: "/builds/hpc/spec/hpc_index.html"}},
		},
		{
			name:   "haddock index phrasing",
			output: haddockIndexOutput,
			want:   []Artifact{{Kind: ArtifactHaddock, Path: "/builds/doc/index.html"}},
		},
		{
			name:   "documentation created phrasing with trailing comma",
			output: haddockCreatedOutput,
			want:   []Artifact{{Kind: ArtifactHaddock, Path: "dist/doc/html/my-app/index.html"}},
		},
		{
			name:   "index phrasing wins over created phrasing",
			output: haddockIndexOutput + haddockCreatedOutput,
			want:   []Artifact{{Kind: ArtifactHaddock, Path: "/builds/doc/index.html"}},
		},
		{
			name:   "coverage and haddock together",
			output: coverageOutput + haddockIndexOutput,
			want: []Artifact{
				{Kind: ArtifactCoverage, Path: "/builds/hpc/spec/hpc_index.html"},
				{Kind: ArtifactHaddock, Path: "/builds/doc/index.html"},
			},
		},
		{
			name:   "plain build output has no artifacts",
			output: "my-app> build\nmy-app> copy/register\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scan(tt.output); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

// recordingOpener records every location handed to it.
type recordingOpener struct {
	opened []string
}

func (r *recordingOpener) Open(location string) error {
	r.opened = append(r.opened, location)
	return nil
}

func TestScanner_Process(t *testing.T) {
	t.Parallel()

	t.Run("enabled classes open with resolved paths", func(t *testing.T) {
		t.Parallel()

		opener := &recordingOpener{}
		s := NewScanner(AutoOpen{Coverage: true, Haddock: true}, opener, nil)

		s.Process(coverageOutput+haddockCreatedOutput, "/pkg/dir")

		want := []string{
			"/builds/hpc/spec/hpc_index.html",
			filepath.Join("/pkg/dir", "dist/doc/html/my-app/index.html"),
		}
		if !reflect.DeepEqual(opener.opened, want) {
			t.Errorf("opened = %v, want %v", opener.opened, want)
		}
	})

	t.Run("disabled classes are surfaced but not opened", func(t *testing.T) {
		t.Parallel()

		opener := &recordingOpener{}
		s := NewScanner(AutoOpen{Coverage: false, Haddock: false}, opener, nil)

		artifacts := s.Process(coverageOutput, "/pkg/dir")
		if len(artifacts) != 1 {
			t.Fatalf("artifacts = %v, want the coverage artifact surfaced", artifacts)
		}
		if len(opener.opened) != 0 {
			t.Errorf("opened = %v, want nothing", opener.opened)
		}
	})
}

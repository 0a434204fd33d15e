// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"testing"

	"stackhand/internal/issue"
	"stackhand/internal/launch"
	"stackhand/internal/project"
	"stackhand/internal/registry"
	"stackhand/pkg/cabal"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "no project marker",
			err:  &project.NoProjectError{Start: "/tmp/nowhere"},
			want: issue.NoProjectFoundId,
		},
		{
			name: "simple project without manifest",
			err:  &project.NoManifestError{Root: "/tmp/proj"},
			want: issue.NoManifestFoundId,
		},
		{
			name: "unreadable manifest",
			err:  &cabal.ManifestError{Path: "/tmp/a.cabal", Err: cabal.ErrManifestNotFound},
			want: issue.ManifestUnreadableId,
		},
		{
			name: "build tool missing",
			err:  &launch.ToolMissingError{Tool: "stack"},
			want: issue.BuildToolMissingId,
		},
		{
			name: "package query failure",
			err:  fmt.Errorf("refreshing: %w", registry.ErrQueryFailed),
			want: issue.PkgToolQueryFailedId,
		},
		{
			name: "wrapped sentinel still classifies",
			err:  fmt.Errorf("preparing: %w", project.ErrNoProject),
			want: issue.NoProjectFoundId,
		},
		{
			name: "plain error has no catalog entry",
			err:  errors.New("boom"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

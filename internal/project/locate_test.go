// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestLocateRoot_MarkerInStartDir(t *testing.T) {
	t.Parallel()

	for _, marker := range []string{"stack.yaml", "package.yaml", "cabal.sandbox.config", CompoundMarker} {
		t.Run(marker, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, filepath.Join(dir, marker))

			root, err := LocateRoot(dir)
			if err != nil {
				t.Fatalf("LocateRoot() error = %v", err)
			}
			if root != dir {
				t.Errorf("LocateRoot() = %s, want %s", root, dir)
			}
		})
	}
}

func TestLocateRoot_WalksUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "stack.yaml"))
	nested := filepath.Join(root, "src", "deep", "deeper")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := LocateRoot(nested)
	if err != nil {
		t.Fatalf("LocateRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("LocateRoot() = %s, want %s", got, root)
	}
}

func TestLocateRoot_NoMarker(t *testing.T) {
	t.Parallel()

	_, err := LocateRoot(t.TempDir())
	if err == nil {
		t.Fatal("LocateRoot() error = nil, want NoProjectError")
	}
	if !errors.Is(err, ErrNoProject) {
		t.Errorf("errors.Is(err, ErrNoProject) = false, err = %v", err)
	}
}

func TestFindManifests_PrunesNestedProjects(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, CompoundMarker))
	touch(t, filepath.Join(root, "alpha", "alpha.cabal"))
	touch(t, filepath.Join(root, "beta", "beta.cabal"))

	// A nested directory with its own marker is a different project;
	// its manifests must not leak into the outer one.
	touch(t, filepath.Join(root, "vendor", "other", "stack.yaml"))
	touch(t, filepath.Join(root, "vendor", "other", "other.cabal"))

	got, err := FindManifests(root)
	if err != nil {
		t.Fatalf("FindManifests() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "alpha", "alpha.cabal"),
		filepath.Join(root, "beta", "beta.cabal"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindManifests() = %v, want %v", got, want)
	}
}

func TestFindManifests_RootItselfNeverPruned(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "stack.yaml"))
	touch(t, filepath.Join(root, "solo.cabal"))

	got, err := FindManifests(root)
	if err != nil {
		t.Fatalf("FindManifests() error = %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(root, "solo.cabal") {
		t.Errorf("FindManifests() = %v, want the root manifest", got)
	}
}

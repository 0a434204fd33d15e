// SPDX-License-Identifier: MPL-2.0

// Package target resolves which buildable unit an operation applies to.
package target

import (
	"errors"
	"fmt"
	"strings"

	"stackhand/internal/prompt"
	"stackhand/pkg/cabal"
)

// ErrNotACandidate is the sentinel error wrapped by SelectionError.
var ErrNotACandidate = errors.New("selection is not a candidate target")

// SelectionError is returned when an injected chooser answers with
// something outside the candidate set.
type SelectionError struct {
	Answer     string
	Candidates []string
}

// Error implements the error interface.
func (e *SelectionError) Error() string {
	return fmt.Sprintf("%q is not one of the offered targets %v", e.Answer, e.Candidates)
}

// Unwrap returns ErrNotACandidate for errors.Is() compatibility.
func (e *SelectionError) Unwrap() error { return ErrNotACandidate }

// Candidates enumerates the selectable targets for a package: the bare
// package name (meaning "the whole package") followed by every rendered
// target. A non-empty fragment filters targets by substring; the bare
// package name is exempt and always included.
func Candidates(pkg *cabal.Package, fragment string) []string {
	out := []string{pkg.Name}
	for _, t := range pkg.Targets {
		rendered := t.String()
		if fragment == "" || strings.Contains(rendered, fragment) {
			out = append(out, rendered)
		}
	}
	return out
}

// Resolve picks the target an operation should run against. In auto mode
// the bare package name is returned without consulting the chooser;
// otherwise the injected prompter picks from the candidate set and its
// answer must be a member of it.
func Resolve(pkg *cabal.Package, fragment string, auto bool, prompter prompt.Prompter) (string, error) {
	if auto {
		return pkg.Name, nil
	}

	candidates := Candidates(pkg, fragment)
	answer, err := prompter.Select("Target", candidates)
	if err != nil {
		return "", fmt.Errorf("choosing target for %s: %w", pkg.Name, err)
	}
	for _, c := range candidates {
		if answer == c {
			return answer, nil
		}
	}
	return "", &SelectionError{Answer: answer, Candidates: candidates}
}

// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stackhand/internal/issue"
	"stackhand/internal/launch"
	"stackhand/internal/project"
	"stackhand/internal/registry"
	"stackhand/pkg/cabal"
)

// classifyError maps engine failures to issue catalog IDs. Errors with
// no catalog entry (user cancellations, plain exec failures) map to 0.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, project.ErrNoProject):
		return issue.NoProjectFoundId
	case errors.Is(err, project.ErrNoManifest):
		return issue.NoManifestFoundId
	case errors.Is(err, cabal.ErrManifestNotFound):
		return issue.ManifestUnreadableId
	case errors.Is(err, launch.ErrToolMissing):
		return issue.BuildToolMissingId
	case errors.Is(err, registry.ErrQueryFailed):
		return issue.PkgToolQueryFailedId
	default:
		return 0
	}
}

// renderIssueHelp prints the catalog explanation for id, if any. Render
// failures are swallowed; the underlying error still reaches the user.
func renderIssueHelp(w io.Writer, id issue.Id) {
	entry := issue.Lookup(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// runWithHelp wraps a RunE so that classified engine errors print their
// catalog explanation on stderr before the error itself is reported.
func runWithHelp(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		if id := classifyError(err); id != 0 {
			renderIssueHelp(cmd.ErrOrStderr(), id)
		}
		return err
	}
}

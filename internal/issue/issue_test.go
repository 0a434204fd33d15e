// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestLookup_AllIdsRegistered(t *testing.T) {
	t.Parallel()

	for _, id := range Ids() {
		issue := Lookup(id)
		if issue == nil {
			t.Fatalf("Lookup(%d) = nil", id)
		}
		if issue.Id() != id {
			t.Errorf("issue registered under %d reports Id() = %d", id, issue.Id())
		}
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
}

func TestLookup_UnknownId(t *testing.T) {
	t.Parallel()

	if got := Lookup(Id(9999)); got != nil {
		t.Errorf("Lookup(9999) = %v, want nil", got)
	}
}

func TestRender_IncludesDocLinks(t *testing.T) {
	t.Parallel()

	// Swap the renderer for a passthrough so the test asserts on the
	// assembled markdown, not on glamour's terminal styling.
	orig := render
	render = func(in, stylePath string) (string, error) { return in, nil }
	defer func() { render = orig }()

	out, err := Lookup(NoProjectFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "No project found") {
		t.Errorf("Render() = %q, want the issue body", out)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("Render() = %q, want doc links section", out)
	}
}

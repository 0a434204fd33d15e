// SPDX-License-Identifier: MPL-2.0

// Package registry caches the globally installed package database.
//
// The cache is filled lazily by one invocation of the installed-package
// query tool and is never invalidated automatically; the installed set
// changes far less often than project files, so staleness is accepted
// until an explicit Refresh.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultQueryTool is the installed-package listing tool.
const DefaultQueryTool = "ghc-pkg"

// ErrQueryFailed is the sentinel error wrapped when the installed-package
// query tool cannot be run.
var ErrQueryFailed = errors.New("installed-package query failed")

// packageToken matches one <name>-<version> token from the query output.
// The version is the trailing dotted-numeric run; everything before the
// final dash that precedes it is the package name.
var packageToken = regexp.MustCompile(`^(.+)-([0-9]+(?:\.[0-9]+)*)$`)

type (
	// QueryFunc produces the raw installed-package listing. The default
	// implementation execs the query tool; tests inject canned output.
	QueryFunc func(ctx context.Context) (string, error)

	// Registry is the lazily filled package→versions cache.
	Registry struct {
		query     QueryFunc
		logger    *log.Logger
		installed map[string][]string
	}
)

// New returns a registry backed by the given query. A nil query execs
// DefaultQueryTool; a nil logger defaults to the package-level logger.
func New(query QueryFunc, logger *log.Logger) *Registry {
	if query == nil {
		query = ExecQuery(DefaultQueryTool)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{query: query, logger: logger}
}

// ExecQuery returns a QueryFunc that runs `<tool> list --simple-output`.
func ExecQuery(tool string) QueryFunc {
	return func(ctx context.Context) (string, error) {
		out, err := exec.CommandContext(ctx, tool, "list", "--simple-output").Output()
		if err != nil {
			return "", fmt.Errorf("querying installed packages via %s: %w: %w", tool, ErrQueryFailed, err)
		}
		return string(out), nil
	}
}

// Installed returns the sorted names of all installed packages, filling
// the cache on first use.
func (r *Registry) Installed(ctx context.Context) ([]string, error) {
	if err := r.fill(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(r.installed))
	for name := range r.installed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Versions returns every installed version of the named package, in the
// order the query reported them. Duplicate versions are preserved: they
// represent multiple installed copies.
func (r *Registry) Versions(ctx context.Context, name string) ([]string, error) {
	if err := r.fill(ctx); err != nil {
		return nil, err
	}
	return r.installed[name], nil
}

// Refresh discards the cache and re-runs the query wholesale.
func (r *Registry) Refresh(ctx context.Context) error {
	r.installed = nil
	return r.fill(ctx)
}

// fill populates the cache on first use. Tokens that do not look like
// <name>-<version> are ignored.
func (r *Registry) fill(ctx context.Context) error {
	if r.installed != nil {
		return nil
	}

	out, err := r.query(ctx)
	if err != nil {
		return err
	}

	installed := make(map[string][]string)
	for _, token := range strings.Fields(out) {
		m := packageToken.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		installed[m[1]] = append(installed[m[1]], m[2])
	}

	r.logger.Debug("installed-package cache filled", "packages", len(installed))
	r.installed = installed
	return nil
}

// SPDX-License-Identifier: MPL-2.0

// Package issue maps fatal engine errors to user-facing, markdown-rendered
// explanations with concrete next steps.
package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NoProjectFoundId Id = iota + 1
	NoManifestFoundId
	ManifestUnreadableId
	BuildToolMissingId
	PkgToolQueryFailedId
	ConfigLoadFailedId
	ProcessSpawnFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failing area
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	noProjectFoundIssue = &Issue{
		id: NoProjectFoundId,
		mdMsg: `
# No project found!

We walked from the starting directory all the way up and found no
project marker (stack.yaml, package.yaml, cabal.sandbox.config or
cabal.project).

## Things you can try:
- Change into a directory inside a Haskell project
- Start a new project:
~~~
$ stack new my-project
~~~`,
		docLinks: []HttpLink{
			"https://docs.haskellstack.org/en/stable/GUIDE/",
		},
	}

	noManifestFoundIssue = &Issue{
		id: NoManifestFoundId,
		mdMsg: `
# No package manifest found!

The project root has a marker file but not exactly one ` + "`.cabal`" + `
manifest next to it.

## Things you can try:
- Generate the manifest from package.yaml:
~~~
$ hpack
~~~
- For a multi-package project, add a cabal.project file at the root`,
		docLinks: []HttpLink{
			"https://cabal.readthedocs.io/en/stable/cabal-project-description-file.html",
		},
	}

	manifestUnreadableIssue = &Issue{
		id: ManifestUnreadableId,
		mdMsg: `
# A package manifest could not be read

One manifest in the project is unreadable; its package shows up with
empty name and version until the file is fixed. The rest of the project
loaded normally.`,
	}

	buildToolMissingIssue = &Issue{
		id: BuildToolMissingId,
		mdMsg: `
# Build tool not found!

The configured build tool is not on PATH, so no command can be issued.

## Things you can try:
- Install stack:
~~~
$ curl -sSL https://get.haskellstack.org/ | sh
~~~
- Point stackhand at an existing binary:
~~~
$ export STACKHAND_TOOL=/path/to/stack
~~~`,
		docLinks: []HttpLink{
			"https://docs.haskellstack.org/en/stable/install_and_upgrade/",
		},
	}

	pkgToolQueryFailedIssue = &Issue{
		id: PkgToolQueryFailedId,
		mdMsg: `
# Installed-package query failed

Listing the globally installed packages did not work. The registry view
stays empty until a query succeeds.

## Things you can try:
- Check the query tool directly:
~~~
$ ghc-pkg list --simple-output
~~~
- Configure a different query tool with ` + "`pkg_tool`" + ` in the config file`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The config file exists but could not be read or decoded.

## Things you can try:
- Validate the TOML syntax of your config file
- Run with defaults by moving the file aside`,
	}

	processSpawnFailedIssue = &Issue{
		id: ProcessSpawnFailedId,
		mdMsg: `
# The build tool process could not be started

The command was assembled but the child process failed to spawn. Nothing
ran, so there is no output to inspect and nothing is retried.

## Things you can try:
- Check that the tool path is executable
- Check the working directory still exists`,
	}

	issues = map[Id]*Issue{
		NoProjectFoundId:     noProjectFoundIssue,
		NoManifestFoundId:    noManifestFoundIssue,
		ManifestUnreadableId: manifestUnreadableIssue,
		BuildToolMissingId:   buildToolMissingIssue,
		PkgToolQueryFailedId: pkgToolQueryFailedIssue,
		ConfigLoadFailedId:   configLoadFailedIssue,
		ProcessSpawnFailedId: processSpawnFailedIssue,
	}
)

// Lookup returns the issue registered for id, or nil.
func Lookup(id Id) *Issue {
	return issues[id]
}

// Ids returns all registered issue ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}

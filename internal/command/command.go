// SPDX-License-Identifier: MPL-2.0

// Package command assembles shell-safe build tool invocations.
package command

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"stackhand/internal/prompt"
)

// FallbackLogKey is the log channel used when no package is in scope.
const FallbackLogKey = "global"

// logKeySuffix scopes output channels to this tool so operations on the
// same package share one channel and different packages get distinct ones.
const logKeySuffix = ":stack"

// Command is one assembled build tool invocation. It is ephemeral:
// constructed per run and handed straight to the process runner.
type Command struct {
	// Tool is the build tool executable path.
	Tool string
	// Operation is the tool subcommand (build, test, bench, haddock...).
	Operation string
	// Args are the positional arguments, already filtered and ordered.
	Args []string
	// Dir is the working directory for the child process.
	Dir string
	// LogKey names the output channel the process writes to.
	LogKey string
	// Edited holds the user-modified command line when the
	// edit-before-run escape hatch was taken; when non-empty it
	// replaces Tool/Operation/Args entirely and is executed as shell.
	Edited string
}

// Build assembles a command in the fixed order [tool, operation, args...].
// Nil optional arguments are dropped; every surviving token is quoted
// independently when rendered, so the textual form is safe to hand to a
// shell. dir is the working directory; logKey routes the output.
func Build(tool, operation string, args []*string, dir, logKey string) *Command {
	kept := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		kept = append(kept, *a)
	}
	return &Command{
		Tool:      tool,
		Operation: operation,
		Args:      kept,
		Dir:       dir,
		LogKey:    logKey,
	}
}

// Argv returns the exec argument vector: operation first, then the
// positional arguments, unquoted (quoting is only for the textual form).
func (c *Command) Argv() []string {
	return append([]string{c.Operation}, c.Args...)
}

// String renders the full command line with each token shell-quoted
// independently, joined by single spaces.
func (c *Command) String() string {
	tokens := append([]string{c.Tool, c.Operation}, c.Args...)
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = quoteToken(tok)
	}
	return strings.Join(quoted, " ")
}

// EditWith runs the edit-before-run escape hatch: the rendered command
// line is handed to the prompter and the (possibly modified) text becomes
// the final command. The text is deliberately not parsed back into a
// structured form; it will be executed as shell.
func (c *Command) EditWith(p prompt.Prompter) error {
	edited, err := p.EditText(c.String())
	if err != nil {
		return fmt.Errorf("editing command: %w", err)
	}
	c.Edited = edited
	return nil
}

// Arg wraps a literal string as an optional argument.
func Arg(s string) *string { return &s }

// LogKey derives the output channel name for a package: the lowercased
// name with whitespace collapsed to hyphens, plus a fixed suffix. An
// empty name falls back to FallbackLogKey.
func LogKey(pkgName string) string {
	slug := strings.ToLower(strings.TrimSpace(pkgName))
	if slug == "" {
		slug = FallbackLogKey
	}
	slug = strings.Join(strings.Fields(slug), "-")
	return slug + logKeySuffix
}

// quoteToken shell-quotes one token. syntax.Quote only fails on strings a
// POSIX shell cannot represent (NUL bytes); those degrade to the raw
// token.
func quoteToken(tok string) string {
	quoted, err := syntax.Quote(tok, syntax.LangPOSIX)
	if err != nil {
		return tok
	}
	return quoted
}

// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"stackhand/internal/prompt"
)

// terminalPrompter implements prompt.Prompter on the controlling
// terminal: numbered selection on stdin, $EDITOR round-trip for edits.
type terminalPrompter struct {
	in  *bufio.Reader
	out *os.File
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

var _ prompt.Prompter = (*terminalPrompter)(nil)

// Select prints a numbered menu and reads the chosen index.
func (p *terminalPrompter) Select(title string, options []string) (string, error) {
	fmt.Fprintln(p.out, TitleStyle.Render(title))
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %2d) %s\n", i+1, HighlightStyle.Render(opt))
	}
	fmt.Fprintf(p.out, "> ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	line = strings.TrimSpace(line)

	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(options) {
		return "", fmt.Errorf("invalid selection %q: %w", line, prompt.ErrPromptCancelled)
	}
	return options[idx-1], nil
}

// EditText round-trips the command line through $EDITOR (or $VISUAL),
// falling back to a plain stdin line when neither is set.
func (p *terminalPrompter) EditText(initial string) (string, error) {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		fmt.Fprintf(p.out, "%s\n(edit, empty keeps as-is)> ", HighlightStyle.Render(initial))
		line, err := p.in.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading edited command: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return initial, nil
		}
		return line, nil
	}

	tmp, err := os.CreateTemp("", "stackhand-cmd-*.sh")
	if err != nil {
		return "", fmt.Errorf("creating edit buffer: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(initial + "\n"); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing edit buffer: %w", err)
	}
	tmp.Close()

	cmd := exec.Command(editor, tmp.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running editor %s: %w", editor, err)
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("reading edit buffer: %w", err)
	}
	return strings.TrimSpace(string(edited)), nil
}

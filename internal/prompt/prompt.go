// SPDX-License-Identifier: MPL-2.0

// Package prompt defines the interactivity capability injected into the
// engine. The engine never performs interactive I/O itself; any UI layer
// (terminal menu, editor integration, web form) implements Prompter.
package prompt

import (
	"errors"
	"fmt"
)

// ErrPromptCancelled is returned by implementations when the user aborts
// a selection or edit.
var ErrPromptCancelled = errors.New("prompt cancelled")

type (
	// Prompter supplies the two interactive indirections the engine
	// needs: picking one option from a list and editing a command line
	// before it runs.
	Prompter interface {
		// Select presents options under the given title and returns
		// the chosen one. Implementations must return a member of
		// options.
		Select(title string, options []string) (string, error)

		// EditText hands the user an editable text (the fully
		// assembled command line) and returns the possibly modified
		// result. The returned text is executed as-is; it is never
		// parsed back into a structured form.
		EditText(initial string) (string, error)
	}

	// Scripted is a Prompter fake driven by pre-recorded answers, used
	// in tests. Select answers are consumed in order; EditFunc, when
	// set, intercepts EditText.
	Scripted struct {
		// Selections are returned by successive Select calls.
		Selections []string
		// EditFunc transforms the initial text; nil returns it
		// unchanged.
		EditFunc func(initial string) string

		// SelectCalls records the titles passed to Select.
		SelectCalls []string
		// Seen records the option lists passed to Select.
		Seen [][]string

		next int
	}
)

// Select returns the next scripted answer.
func (s *Scripted) Select(title string, options []string) (string, error) {
	s.SelectCalls = append(s.SelectCalls, title)
	s.Seen = append(s.Seen, options)
	if s.next >= len(s.Selections) {
		return "", fmt.Errorf("scripted prompter exhausted after %d selections", s.next)
	}
	answer := s.Selections[s.next]
	s.next++
	return answer, nil
}

// EditText applies EditFunc, or returns the initial text untouched.
func (s *Scripted) EditText(initial string) (string, error) {
	if s.EditFunc == nil {
		return initial, nil
	}
	return s.EditFunc(initial), nil
}

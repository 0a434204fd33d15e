// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all
// CLI output, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple - titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - successful runs.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - failed runs and errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorHighlight is blue - targets, paths and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// HighlightStyle is for targets, commands and artifact paths.
	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

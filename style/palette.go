// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import "github.com/mangasan-cli/mangasan/color"

// Semantic color roles shared by the interactive surfaces. Mini mode sticks
// to the ANSI palette so the output inherits the user's terminal theme.
var (
	AccentColor    = color.Purple
	SecondaryColor = color.Blue
	SuccessColor   = color.Green
	WarningColor   = color.Yellow
	ErrorColor     = color.Red
	FaintColor     = color.Gray
)

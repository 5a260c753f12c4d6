package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain is unstyled text for pipes and CI logs.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is lipgloss-styled text for real terminals.
	OutputModeStyled
	// OutputModeInteractive is the full-screen dashboard.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// defaultTerminalWidth is used when the real width cannot be determined.
const defaultTerminalWidth = 80

// DetectOutputMode decides how output should be rendered. plain forces
// unstyled output; noColor downgrades styled output to plain;
// interactive requests the full dashboard, granted only when both stdin
// and stdout are terminals. Pipes, CI, and dumb terminals always get
// plain output.
func DetectOutputMode(plain, noColor, interactive bool) OutputMode {
	if plain {
		return OutputModePlain
	}
	if !stdoutIsTerminal() || os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if interactive && stdinIsTerminal() {
		return OutputModeInteractive
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	return OutputModeStyled
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the current stdout width, falling back to a
// fixed default when stdout is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTerminalWidth
	}
	return w
}

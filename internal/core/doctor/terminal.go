package doctor

import (
	"context"
	"os"
	"strings"

	"golang.org/x/term"
)

// Environment is the process state the terminal check inspects.
type Environment struct {
	Getenv      func(string) string
	StdoutIsTTY bool
	OpenTTY     func() error // opens and closes the controlling terminal
}

// SystemEnvironment returns the environment of the running process.
func SystemEnvironment() Environment {
	return Environment{
		Getenv:      os.Getenv,
		StdoutIsTTY: term.IsTerminal(int(os.Stdout.Fd())),
		OpenTTY: func() error {
			f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
			if err != nil {
				return err
			}
			return f.Close()
		},
	}
}

// TerminalCheck verifies that toasts can be drawn and receive mouse input.
type TerminalCheck struct {
	env Environment
}

// NewTerminalCheck creates a terminal check for env.
func NewTerminalCheck(env Environment) *TerminalCheck {
	return &TerminalCheck{env: env}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.env.StdoutIsTTY {
		result.pass("stdout", "terminal")
	} else {
		result.warn("stdout", "not a terminal, show and run fall back to plain output").Hint = "use --headless to get JSON events instead"
	}

	if err := c.env.OpenTTY(); err != nil {
		result.warn("/dev/tty", "unavailable, pipe will write JSON events instead of drawing").Hint = "run pipe from an interactive shell"
	} else {
		result.pass("/dev/tty", "available for pipe")
	}

	switch termName := c.env.Getenv("TERM"); termName {
	case "":
		result.warn("TERM", "not set").Hint = "export TERM=xterm-256color"
	case "dumb":
		result.fail("TERM", "dumb terminals cannot draw toasts").Hint = "use a terminal emulator that supports ANSI escapes"
	default:
		result.pass("TERM", termName)
	}

	switch ct := strings.ToLower(c.env.Getenv("COLORTERM")); ct {
	case "truecolor", "24bit":
		result.pass("colors", "truecolor")
	default:
		result.warn("colors", "COLORTERM does not advertise truecolor, theme colors are approximated").Hint = "export COLORTERM=truecolor if the terminal supports it"
	}

	return result
}

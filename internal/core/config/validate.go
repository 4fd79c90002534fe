package config

import (
	"fmt"
	"net"
	"os"

	"github.com/agext/levenshtein"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/flare/internal/core/styles"
	"github.com/colonyops/flare/internal/core/toast"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is valid. Problems are reported
// as criterio.FieldErrors keyed by yaml path.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if _, ok := toast.ParsePosition(c.Toast.Position); !ok {
		errs = errs.Append("toast.position", unknownValueError("position", c.Toast.Position, positionNames()))
	}
	if c.Toast.Duration < 0 {
		errs = errs.Append("toast.duration", fmt.Errorf("must be 0 (persistent) or a positive number of milliseconds"))
	}
	if c.Toast.MaxVisible < 1 {
		errs = errs.Append("toast.max_visible", fmt.Errorf("must be at least 1"))
	}
	if c.Toast.Width < 16 {
		errs = errs.Append("toast.width", fmt.Errorf("must be at least 16"))
	}
	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", unknownValueError("theme", c.TUI.Theme, styles.ThemeNames()))
	}

	return errs.ToError()
}

// ValidateDeep performs Validate plus checks that touch the environment:
// config file accessibility and the metrics listen address. An empty
// configPath skips the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("metrics.addr", c.Metrics.Addr, validateListenAddr),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Toast.Duration > 0 && c.Toast.Duration < 1000 {
		warnings = append(warnings, ValidationWarning{
			Category: "Toast",
			Item:     "duration",
			Message:  fmt.Sprintf("%dms leaves little time to read a toast", c.Toast.Duration),
		})
	}

	if c.Toast.Duration == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Toast",
			Item:     "duration",
			Message:  "every toast is persistent unless a request sets its own duration",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func validateListenAddr(addr string) error {
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return nil
}

func unknownValueError(kind, value string, candidates []string) error {
	if s := suggest(value, candidates); s != "" {
		return fmt.Errorf("unknown %s %q, did you mean %q?", kind, value, s)
	}
	return fmt.Errorf("unknown %s %q", kind, value)
}

// suggest returns the candidate closest to value, or "" when nothing is
// similar enough.
func suggest(value string, candidates []string) string {
	best, bestScore := "", 0.5
	for _, c := range candidates {
		if score := levenshtein.Match(value, c, nil); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func positionNames() []string {
	names := make([]string, len(toast.Positions))
	for i, p := range toast.Positions {
		names[i] = string(p)
	}
	return names
}

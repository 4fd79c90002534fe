package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
)

// Environment variables overriding the config file.
const (
	EnvPosition      = "FLARE_POSITION"
	EnvDuration      = "FLARE_DURATION"
	EnvMaxVisible    = "FLARE_MAX_VISIBLE"
	EnvStackExpanded = "FLARE_STACK_EXPANDED"
	EnvTheme         = "FLARE_THEME"
	EnvMetricsAddr   = "FLARE_METRICS_ADDR"
)

// ApplyEnv overrides fields from environment variables read through lookup
// (usually os.LookupEnv). FLARE_DURATION accepts milliseconds or a Go
// duration string such as "3s".
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs criterio.FieldErrorsBuilder

	if v, ok := lookup(EnvPosition); ok {
		c.Toast.Position = v
	}

	if v, ok := lookup(EnvDuration); ok {
		ms, err := parseMillis(v)
		if err != nil {
			errs = errs.Append(EnvDuration, err)
		} else {
			c.Toast.Duration = ms
		}
	}

	if v, ok := lookup(EnvMaxVisible); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = errs.Append(EnvMaxVisible, fmt.Errorf("not an integer: %q", v))
		} else {
			c.Toast.MaxVisible = n
		}
	}

	if v, ok := lookup(EnvStackExpanded); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = errs.Append(EnvStackExpanded, fmt.Errorf("not a boolean: %q", v))
		} else {
			c.Toast.StackExpanded = b
		}
	}

	if v, ok := lookup(EnvTheme); ok {
		c.TUI.Theme = v
	}

	if v, ok := lookup(EnvMetricsAddr); ok {
		c.Metrics.Addr = v
	}

	return errs.ToError()
}

func parseMillis(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("expected milliseconds or a duration like 3s, got %q", v)
	}
	return int(d / time.Millisecond), nil
}

package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/flare/internal/core/config"
)

// ConfigCheck loads the config file with environment overrides and reports
// each invalid field.
type ConfigCheck struct {
	path   string
	lookup func(string) (string, bool)
}

// NewConfigCheck creates a config check for the file at path.
func NewConfigCheck(path string, lookup func(string) (string, bool)) *ConfigCheck {
	return &ConfigCheck{path: path, lookup: lookup}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		result.pass("config file", "not found, using defaults")
	} else {
		result.pass("config file", c.path)
	}

	cfg, err := config.Read(c.path, c.lookup)
	if err != nil {
		result.fail("load", err.Error()).Hint = "check the file is valid YAML"
		return result
	}

	err = cfg.ValidateDeep(c.path)
	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
		result.pass("fields", "all values valid")
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			result.fail(fe.Field, fe.Err.Error())
		}
	default:
		result.fail("fields", err.Error())
	}

	for _, w := range cfg.Warnings() {
		result.warn("toast."+w.Item, w.Message)
	}

	return result
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/flare/internal/core/toast"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_defaults_when_missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_reads_yaml(t *testing.T) {
	path := writeConfig(t, `
toast:
  position: top-center
  duration: 0
  max_visible: 5
  stack_expanded: true
tui:
  theme: nord
  markdown: false
metrics:
  addr: 127.0.0.1:9464
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "top-center", cfg.Toast.Position)
	assert.Zero(t, cfg.Toast.Duration, "explicit zero is kept as persistent")
	assert.Equal(t, 5, cfg.Toast.MaxVisible)
	assert.True(t, cfg.Toast.StackExpanded)
	assert.Equal(t, 44, cfg.Toast.Width, "unset keys keep defaults")
	assert.Equal(t, "nord", cfg.TUI.Theme)
	assert.False(t, cfg.TUI.Markdown)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestLoad_env_overrides_file(t *testing.T) {
	path := writeConfig(t, "toast:\n  duration: 8000\n  position: top end\n")

	cfg, err := Load(path, envMap(map[string]string{
		EnvDuration:      "2s",
		EnvPosition:      "bottom start",
		EnvStackExpanded: "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.Toast.Duration)
	assert.Equal(t, "bottom start", cfg.Toast.Position)
	assert.True(t, cfg.Toast.StackExpanded)
}

func TestLoad_invalid_yaml(t *testing.T) {
	path := writeConfig(t, "toast: [unclosed")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_invalid_values(t *testing.T) {
	path := writeConfig(t, "toast:\n  max_visible: 0\n  position: middle\n")

	_, err := Load(path, nil)
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestRead_skips_validation(t *testing.T) {
	path := writeConfig(t, "toast:\n  position: middle\n")

	cfg, err := Read(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "middle", cfg.Toast.Position)
	assert.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, c Config)
		wantErr string
	}{
		{
			name: "milliseconds",
			env:  map[string]string{EnvDuration: "1500"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 1500, c.Toast.Duration)
			},
		},
		{
			name: "go duration",
			env:  map[string]string{EnvDuration: "750ms"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 750, c.Toast.Duration)
			},
		},
		{
			name: "max visible and theme",
			env:  map[string]string{EnvMaxVisible: " 4 ", EnvTheme: "solarized-dark", EnvMetricsAddr: ":9000"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 4, c.Toast.MaxVisible)
				assert.Equal(t, "solarized-dark", c.TUI.Theme)
				assert.Equal(t, ":9000", c.Metrics.Addr)
			},
		},
		{name: "bad duration", env: map[string]string{EnvDuration: "soon"}, wantErr: EnvDuration},
		{name: "bad max visible", env: map[string]string{EnvMaxVisible: "three"}, wantErr: EnvMaxVisible},
		{name: "bad bool", env: map[string]string{EnvStackExpanded: "maybe"}, wantErr: EnvStackExpanded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ApplyEnv(envMap(tt.env))

			if tt.wantErr != "" {
				var fieldErrs criterio.FieldErrors
				require.ErrorAs(t, err, &fieldErrs)
				require.Len(t, fieldErrs, 1)
				assert.Equal(t, tt.wantErr, fieldErrs[0].Field)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestToastOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toast.Position = "Top-Start"
	cfg.Toast.Duration = 0
	cfg.Toast.MaxVisible = 2
	cfg.Toast.StackExpanded = true

	opts := cfg.ToastOptions()
	assert.Equal(t, toast.PositionTopStart, opts.Position)
	assert.Equal(t, time.Duration(0), opts.Duration)
	assert.Equal(t, 2, opts.MaxVisible)
	assert.True(t, opts.Expanded)
}

func TestToastOptions_defaults(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.ToastOptions()

	assert.Equal(t, toast.DefaultPosition, opts.Position)
	assert.Equal(t, toast.DefaultDuration, opts.Duration)
	assert.Equal(t, toast.DefaultMaxVisible, opts.MaxVisible)
}

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/colonyops/flare/internal/printer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runConfigValidate(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	flags := &Flags{ConfigPath: path}
	app := NewConfigValidateCmd(flags).Register(newTestApp(&buf))

	ctx := printer.NewContext(context.Background(), printer.New(&buf))
	err := app.Run(ctx, append([]string{"flare", "config", "validate"}, args...))
	return buf.String(), err
}

func TestConfigValidateCmd_valid(t *testing.T) {
	path := writeConfig(t, "toast:\n  position: top end\n  duration: 4000\n")

	out, err := runConfigValidate(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigValidateCmd_reports_field_errors_as_json(t *testing.T) {
	path := writeConfig(t, "toast:\n  position: top ennd\n  max_visible: 0\n")

	out, err := runConfigValidate(t, path, "--format", "json")
	require.Error(t, err)

	doc := gjson.Parse(out)
	assert.False(t, doc.Get("valid").Bool())
	assert.Equal(t, "toast.position", doc.Get("errors.0.field").String())
	assert.Contains(t, doc.Get("errors.0.message").String(), `did you mean "top end"`)
	assert.Equal(t, "toast.max_visible", doc.Get("errors.1.field").String())
}

func TestConfigValidateCmd_unparseable_file(t *testing.T) {
	path := writeConfig(t, "toast: [\n")

	out, err := runConfigValidate(t, path)
	require.Error(t, err)
	assert.Contains(t, out, "config_file")
	assert.Contains(t, out, "1 error(s) found")
}

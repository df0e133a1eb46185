package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.True(t, cfg.Options.ExportedOnly)
	assert.False(t, cfg.Options.PerClass)
	assert.True(t, cfg.ShouldInherit())
	assert.Equal(t, DeprecationsWarn, cfg.Options.Deprecations)
	assert.Equal(t, "any", cfg.MapType("interface{}"))
	assert.Equal(t, "Widget", cfg.MapType("Widget"))
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "docgen.yaml", `
typeMappings:
  int64: integer
options:
  perClass: true
  exportedOnly: false
  includeClasses: [User]
  inherit: false
  deprecations: silent
`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "integer", cfg.MapType("int64"))
	assert.Equal(t, "any", cfg.MapType("interface{}"))
	assert.True(t, cfg.Options.PerClass)
	assert.False(t, cfg.Options.ExportedOnly)
	assert.Equal(t, []string{"User"}, cfg.Options.IncludeClasses)
	assert.False(t, cfg.ShouldInherit())
	assert.Equal(t, DeprecationsSilent, cfg.Options.Deprecations)
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "docgen.json", `{"options": {"exportedOnly": true, "excludeClasses": ["Internal"]}}`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, []string{"Internal"}, cfg.Options.ExcludeClasses)
	assert.True(t, cfg.ShouldInherit())
}

func TestLoadFileKeepsExportedOnlyWhenMissing(t *testing.T) {
	path := writeFile(t, "docgen.yaml", "options:\n  perClass: true\n")

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))
	assert.True(t, cfg.Options.ExportedOnly)
	assert.True(t, cfg.Options.PerClass)
}

func TestLoadFileUnknownExtension(t *testing.T) {
	path := writeFile(t, "docgen.conf", `{"options": {"perClass": true}}`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))
	assert.True(t, cfg.Options.PerClass)
}

func TestLoadFileErrors(t *testing.T) {
	cfg := New()

	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, cfg.LoadFile(writeFile(t, "bad.json", "{")))
	assert.Error(t, cfg.LoadFile(writeFile(t, "bad.yaml", "options: [")))

	err := cfg.LoadFile(writeFile(t, "mode.yaml", "options:\n  deprecations: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "options.deprecations")
}

func TestSetInherit(t *testing.T) {
	cfg := New()
	cfg.SetInherit(false)
	assert.False(t, cfg.ShouldInherit())
	cfg.SetInherit(true)
	assert.True(t, cfg.ShouldInherit())
}

func TestShouldIncludeClass(t *testing.T) {
	cfg := New()
	cfg.Options.IncludeClasses = []string{"User", "order"}
	cfg.Options.ExcludeClasses = []string{"User"}

	assert.False(t, cfg.ShouldIncludeClass("User", true))
	assert.False(t, cfg.ShouldIncludeClass("order", false))
	assert.False(t, cfg.ShouldIncludeClass("Product", true))

	cfg.Options.ExportedOnly = false
	assert.True(t, cfg.ShouldIncludeClass("order", false))
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `descriptor: app/pom.xml
path: /project/properties
updater: document
date_pattern: "%Y-%m-%d"

properties:
  build_number: app.build
  build_date: app.date
  build_year: app.year

extra:
  build.host: ci-01
  build.branch: main
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "app/pom.xml", cfg.Descriptor)
	assert.Equal(t, "/project/properties", cfg.Path)
	assert.Equal(t, "document", cfg.Updater)
	assert.Equal(t, "%Y-%m-%d", cfg.DatePattern)
	assert.Equal(t, "app.build", cfg.Properties.BuildNumber)
	assert.Equal(t, "app.date", cfg.Properties.BuildDate)
	assert.Equal(t, "app.year", cfg.BuildYearProperty())
	assert.Equal(t, "ci-01", cfg.Extra["build.host"])
	assert.Equal(t, "main", cfg.Extra["build.branch"])
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `updater: document
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Descriptor)
	assert.Nil(t, cfg.Properties.BuildYear)

	full := cfg.WithDefaults()
	assert.Equal(t, buildmeta.DefaultDescriptor, full.Descriptor)
	assert.Equal(t, buildmeta.DefaultElementPath, full.Path)
	assert.Equal(t, "document", full.Updater)
	assert.Equal(t, buildmeta.DefaultBuildYearProperty, full.BuildYearProperty())
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), nil, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg.WithDefaults())
}

func TestLoad_BuildYearDisabled(t *testing.T) {
	dir := t.TempDir()
	content := `properties:
  build_year: ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.BuildYearProperty())
	assert.Equal(t, "", cfg.WithDefaults().BuildYearProperty())
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, buildmeta.ErrInvalidConfig))
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("pathh: /x\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, buildmeta.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "pathh")
}

func TestWithDefaults_DoesNotAlias(t *testing.T) {
	cfg := &ProjectConfig{Extra: map[string]string{"a": "1"}}

	full := cfg.WithDefaults()
	full.Extra["a"] = "2"

	assert.Equal(t, "1", cfg.Extra["a"])
}

func TestMarshal_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	data, err := Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# buildmeta configuration")
	assert.Contains(t, string(data), "%d.%m.%Y")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644))
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
